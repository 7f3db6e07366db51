package records

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/record-translator/internal/pkg/application/translator"
	"github.com/diwise/record-translator/internal/pkg/presentation/api/records/auth"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributeRecordType string = "record-type"
	TranslationIDHeader      string = "Translation-Id"
)

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app translator.RecordTranslator) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Route("/api/v1/records", func(r chi.Router) {
		r.Use(
			Logger(logging.GetFromContext(ctx)),
			RequiredContentTypes([]string{"application/json", "application/yaml", "application/x-yaml", "text/yaml"}),
		)

		r.Get("/", NewListRecordTypesHandler(app, authenticator))

		r.Route("/{recordType}", func(r chi.Router) {
			r.Use(RecordTypeMiddleware())

			r.Get("/", NewCollectRecordsHandler(app, authenticator))
			r.Post("/translate", NewTranslateRecordsHandler(app, authenticator))
			r.Post("/decode", NewDecodeRecordsHandler(app, authenticator))
			r.Post("/encode", NewEncodeRecordsHandler(app, authenticator))
		})
	})

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}

// RecordTypeMiddleware labels metrics and log entries with the record type of the request
func RecordTypeMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recordType := chi.URLParam(r, "recordType")

			if labeler, found := otelhttp.LabelerFromContext(r.Context()); found {
				labeler.Add(attribute.String(TraceAttributeRecordType, recordType))
			}

			ctx := logging.NewContextWithLogger(
				r.Context(),
				logging.GetFromContext(r.Context()),
				"type",
				recordType,
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
