package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")

const (
	TraceAttributeRecordType string = "record-type"
	TraceAttributeProfile    string = "profile"
)

var tracer = otel.Tracer("record-translator-client")

// Client talks to an http endpoint that serves keyed records in one of the known profiles
type Client struct {
	baseURL    string
	headers    map[string][]string
	debug      bool
	pageSize   int
	httpClient http.Client
}

func Debug(enabled string) func(*Client) {
	return func(c *Client) {
		c.debug = (enabled == "true")
	}
}

func Header(key, value string) func(*Client) {
	return func(c *Client) {
		c.headers[key] = append(c.headers[key], value)
	}
}

func PageSize(size int) func(*Client) {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func New(baseURL string, options ...func(*Client)) *Client {
	c := &Client{
		baseURL:  baseURL,
		headers:  map[string][]string{},
		pageSize: 50,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) callSource(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), ErrRequest)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	for header, headerValue := range c.headers {
		for _, val := range headerValue {
			req.Header.Add(header, val)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}
