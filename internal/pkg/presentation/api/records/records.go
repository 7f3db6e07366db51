package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/record-translator/internal/pkg/application/translator"
	"github.com/diwise/record-translator/internal/pkg/presentation/api/records/auth"
	"github.com/diwise/record-translator/internal/pkg/presentation/api/records/problems"
	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v2"
)

var tracer = otel.Tracer("record-translator/api/records")

//NewListRecordTypesHandler handles GET requests for the known record types and their profiles
func NewListRecordTypesHandler(app translator.RecordTranslator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "list-record-types")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, _ := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		err = authenticator.CheckAccess(ctx, r, "", []string{})
		if err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		writeResponse(w, r, app.RecordTypes())
	})
}

//NewTranslateRecordsHandler handles POST requests that translate keyed records between two profiles
func NewTranslateRecordsHandler(app translator.RecordTranslator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "translate-records")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		recordType := chi.URLParam(r, "recordType")

		from, err := keys.ParseProfile(r.URL.Query().Get("from"))
		if err != nil {
			problems.ReportError(w, err, traceID)
			return
		}

		to, err := keys.ParseProfile(r.URL.Query().Get("to"))
		if err != nil {
			problems.ReportError(w, err, traceID)
			return
		}

		err = authenticator.CheckAccess(ctx, r, recordType, []string{string(from), string(to)})
		if err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		sources, batch, err := readSources(r)
		if err != nil {
			problems.ReportNewBadRequestData(w, err.Error(), traceID)
			return
		}

		result, err := app.Translate(ctx, recordType, from, to, sources)
		if err != nil {
			log.Info("failed to translate records", "err", err.Error())
			problems.ReportError(w, err, traceID)
			return
		}

		w.Header().Add(TranslationIDHeader, result.ID)
		writeRecords(w, r, result.Records, batch)
	})
}

//NewDecodeRecordsHandler handles POST requests that decode keyed records to their canonical form
func NewDecodeRecordsHandler(app translator.RecordTranslator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "decode-records")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		recordType := chi.URLParam(r, "recordType")

		profile, err := keys.ParseProfile(r.URL.Query().Get("profile"))
		if err != nil {
			problems.ReportError(w, err, traceID)
			return
		}

		err = authenticator.CheckAccess(ctx, r, recordType, []string{string(profile)})
		if err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		sources, batch, err := readSources(r)
		if err != nil {
			problems.ReportNewBadRequestData(w, err.Error(), traceID)
			return
		}

		records, err := app.Decode(ctx, recordType, profile, sources)
		if err != nil {
			log.Info("failed to decode records", "err", err.Error())
			problems.ReportError(w, err, traceID)
			return
		}

		if !batch && len(records) == 1 {
			writeResponse(w, r, records[0])
			return
		}

		writeResponse(w, r, records)
	})
}

//NewEncodeRecordsHandler handles POST requests that encode canonical json records under a profile
func NewEncodeRecordsHandler(app translator.RecordTranslator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "encode-records")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		recordType := chi.URLParam(r, "recordType")

		profile, err := keys.ParseProfile(r.URL.Query().Get("profile"))
		if err != nil {
			problems.ReportError(w, err, traceID)
			return
		}

		err = authenticator.CheckAccess(ctx, r, recordType, []string{string(profile)})
		if err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		if isYAML(r.Header.Get("Content-Type")) {
			err = fmt.Errorf("records to encode must be sent as json")
			problems.ReportNewBadRequestData(w, err.Error(), traceID)
			return
		}

		records, batch, err := readRecords(r)
		if err != nil {
			problems.ReportNewBadRequestData(w, err.Error(), traceID)
			return
		}

		result, err := app.Encode(ctx, recordType, profile, records)
		if err != nil {
			log.Info("failed to encode records", "err", err.Error())
			problems.ReportError(w, err, traceID)
			return
		}

		w.Header().Add(TranslationIDHeader, result.ID)
		writeRecords(w, r, result.Records, batch)
	})
}

//NewCollectRecordsHandler handles GET requests for records collected from the configured sources of a record type
func NewCollectRecordsHandler(app translator.RecordTranslator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "collect-records")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		recordType := chi.URLParam(r, "recordType")

		profile, err := keys.ParseProfile(r.URL.Query().Get("profile"))
		if err != nil {
			problems.ReportError(w, err, traceID)
			return
		}

		err = authenticator.CheckAccess(ctx, r, recordType, []string{string(profile)})
		if err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		result, err := app.Collect(ctx, recordType, profile)
		if err != nil {
			log.Info("failed to collect records", "err", err.Error())
			problems.ReportError(w, err, traceID)
			return
		}

		w.Header().Add(TranslationIDHeader, result.ID)
		writeRecords(w, r, result.Records, true)
	})
}

func isYAML(contentType string) bool {
	return strings.Contains(contentType, "yaml")
}

// readSources reads a single keyed object or a list of them from the request body
func readSources(r *http.Request) ([]types.Source, bool, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read request body: %w", err)
	}

	objects, batch, err := container.ReadAll(body, isYAML(r.Header.Get("Content-Type")))
	if err != nil {
		return nil, false, err
	}

	sources := make([]types.Source, 0, len(objects))
	for _, o := range objects {
		sources = append(sources, o)
	}

	return sources, batch, nil
}

func readRecords(r *http.Request) ([]json.RawMessage, bool, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read request body: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, false, fmt.Errorf("request body is empty")
	}

	if body[0] != '[' {
		return []json.RawMessage{json.RawMessage(body)}, false, nil
	}

	records := []json.RawMessage{}
	err = json.Unmarshal(body, &records)
	if err != nil {
		return nil, false, fmt.Errorf("unable to decode request payload: %w", err)
	}

	return records, true, nil
}

func writeRecords(w http.ResponseWriter, r *http.Request, records []*container.Object, batch bool) {
	if !batch && len(records) == 1 {
		writeResponse(w, r, records[0])
		return
	}

	writeResponse(w, r, records)
}

func writeResponse(w http.ResponseWriter, r *http.Request, body any) {
	var b []byte
	var err error

	contentType := "application/json"

	if isYAML(r.Header.Get("Accept")) {
		contentType = "application/yaml"
		b, err = yaml.Marshal(body)
	} else {
		b, err = json.Marshal(body)
	}

	if err != nil {
		problems.NewInternalError(err.Error(), "").WriteResponse(w)
		return
	}

	w.Header().Add("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
