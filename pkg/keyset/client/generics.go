package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/diwise/record-translator/pkg/keyset/codec"
	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RetrieveRecord fetches a single keyed object and decodes it under profile
func RetrieveRecord[R any, F keys.Field, PR codec.Record[R, F]](ctx context.Context, c *Client, path string, profile keys.Profile) (record R, err error) {
	ctx, span := tracer.Start(ctx, "retrieve-record",
		trace.WithAttributes(attribute.String(TraceAttributeProfile, string(profile))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.callSource(ctx, http.MethodGet, path, nil)
	if err != nil {
		return
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("source returned status code %d (%w)", resp.StatusCode, ErrBadResponse)
		return
	}

	src, err := container.FromJSON(respBody)
	if err != nil {
		err = fmt.Errorf("%s (%w)", err.Error(), ErrBadResponse)
		return
	}

	return codec.Decode[R, F, PR](src, profile)
}

// QueryObjects pages through a collection of keyed objects using limit and offset, handing
// each page to callback until the source returns a short page
func QueryObjects(ctx context.Context, c *Client, path string, callback func(page []*container.Object) error) (count int, err error) {
	ctx, span := tracer.Start(ctx, "query-objects")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := logging.GetFromContext(ctx)

	limit := c.pageSize
	offset := 0

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	for {
		url := fmt.Sprintf("%s%slimit=%d&offset=%d", path, separator, limit, offset)
		offset += limit

		logger.Debug("calling source", "url", url)

		var resp *http.Response
		var respBody []byte

		resp, respBody, err = c.callSource(ctx, http.MethodGet, url, nil)
		if err != nil {
			return
		}

		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("source returned status code %d (%w)", resp.StatusCode, ErrBadResponse)
			return
		}

		var objects []*container.Object
		objects, err = container.FromSlice(respBody)
		if err != nil {
			err = fmt.Errorf("%s (%w)", err.Error(), ErrBadResponse)
			return
		}

		err = callback(objects)
		if err != nil {
			return
		}

		count += len(objects)

		if len(objects) < limit {
			break
		}
	}

	return
}

// QueryRecords decodes every object returned by QueryObjects under profile. A page is only
// handed to the callback when every record in it could be decoded.
func QueryRecords[R any, F keys.Field, PR codec.Record[R, F]](ctx context.Context, c *Client, path string, profile keys.Profile, callback func(r R)) (int, error) {
	return QueryObjects(ctx, c, path, func(objects []*container.Object) error {
		page := make([]R, 0, len(objects))

		for idx, o := range objects {
			r, err := codec.Decode[R, F, PR](o, profile)
			if err != nil {
				return fmt.Errorf("failed to decode record %d in page: %w", idx, err)
			}
			page = append(page, r)
		}

		for _, r := range page {
			callback(r)
		}

		return nil
	})
}

// CreateRecord encodes a record under profile and posts it to the source
func CreateRecord[R any, F keys.Field, PR codec.Record[R, F]](ctx context.Context, c *Client, path string, record R, profile keys.Profile) (err error) {
	ctx, span := tracer.Start(ctx, "create-record",
		trace.WithAttributes(attribute.String(TraceAttributeProfile, string(profile))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	o := container.New()

	err = codec.Encode[R, F, PR](record, o, profile)
	if err != nil {
		return
	}

	b, err := json.Marshal(o)
	if err != nil {
		return
	}

	resp, _, err := c.callSource(ctx, http.MethodPost, path, bytes.NewBuffer(b))
	if err != nil {
		return
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}

	err = fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, ErrBadResponse)
	return
}
