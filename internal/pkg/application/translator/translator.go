package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/diwise/record-translator/pkg/datamodels/fiware"
	"github.com/diwise/record-translator/pkg/datamodels/users"
	"github.com/diwise/record-translator/pkg/keyset/client"
	"github.com/diwise/record-translator/pkg/keyset/codec"
	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoSourceConfigured = fmt.Errorf("no source configured")

type RecordTypeInfo struct {
	Type     string   `json:"type" yaml:"type"`
	Profiles []string `json:"profiles" yaml:"profiles"`
}

// Result holds the records produced by a single translation request
type Result struct {
	ID      string
	Records []*container.Object
}

//go:generate moq -rm -out translator_mock.go . RecordTranslator

type RecordTranslator interface {
	RecordTypes() []RecordTypeInfo

	Translate(ctx context.Context, recordType string, from, to keys.Profile, sources []types.Source) (*Result, error)
	Decode(ctx context.Context, recordType string, profile keys.Profile, sources []types.Source) ([]any, error)
	Encode(ctx context.Context, recordType string, profile keys.Profile, records []json.RawMessage) (*Result, error)
	Collect(ctx context.Context, recordType string, to keys.Profile) (*Result, error)
}

var tracer = otel.Tracer("record-translator/app")

// DefaultBindings returns the record types that are known by default
func DefaultBindings() []codec.Binding {
	return []codec.Binding{
		users.Binding(),
		fiware.WeatherObservedBinding(),
	}
}

type source struct {
	profile keys.Profile
	client  *client.Client
	path    string
}

type translatorApp struct {
	bindings map[string]codec.Binding
	sources  map[string][]source
}

func New(ctx context.Context, cfg *Config, bindings ...codec.Binding) (RecordTranslator, error) {
	logger := logging.GetFromContext(ctx)

	app := &translatorApp{
		bindings: make(map[string]codec.Binding, len(bindings)),
		sources:  map[string][]source{},
	}

	for _, b := range bindings {
		if _, exists := app.bindings[b.RecordType()]; exists {
			return nil, fmt.Errorf("record type %s registered more than once", b.RecordType())
		}
		app.bindings[b.RecordType()] = b
	}

	if cfg == nil {
		cfg = &Config{}
	}

	for _, ks := range cfg.KeySets {
		b, err := app.binding(ks.Type)
		if err != nil {
			return nil, err
		}

		profile, err := keys.ParseProfile(ks.Profile)
		if err != nil {
			return nil, err
		}

		b, err = b.WithKeySet(profile, ks.Keys)
		if err != nil {
			return nil, fmt.Errorf("failed to configure key set %s for %s: %w", profile, ks.Type, err)
		}

		app.bindings[ks.Type] = b
	}

	for _, b := range app.bindings {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}

	for _, src := range cfg.Sources {
		b, err := app.binding(src.Type)
		if err != nil {
			return nil, err
		}

		profile, err := keys.ParseProfile(src.Profile)
		if err != nil {
			return nil, err
		}

		if err := requireKeySet(b, profile); err != nil {
			return nil, err
		}

		if src.Endpoint == "" {
			return nil, fmt.Errorf("source for %s has no endpoint", src.Type)
		}

		options := []func(*client.Client){
			client.PageSize(src.PageSize),
			client.Debug(fmt.Sprintf("%t", src.Debug)),
		}
		for key, value := range src.Headers {
			options = append(options, client.Header(key, value))
		}

		app.sources[src.Type] = append(app.sources[src.Type], source{
			profile: profile,
			client:  client.New(src.Endpoint, options...),
			path:    src.Path,
		})
	}

	for _, info := range app.RecordTypes() {
		logger.Info("record type registered", "type", info.Type, "profiles", info.Profiles)
	}

	return app, nil
}

func requireKeySet(b codec.Binding, profile keys.Profile) error {
	if slices.Contains(b.Profiles(), profile) {
		return nil
	}
	return errors.NewKeySetNotFoundError(b.RecordType(), string(profile))
}

func (app *translatorApp) binding(recordType string) (codec.Binding, error) {
	b, ok := app.bindings[recordType]
	if !ok {
		return nil, errors.NewUnknownRecordTypeError(recordType)
	}
	return b, nil
}

func (app *translatorApp) RecordTypes() []RecordTypeInfo {
	infos := make([]RecordTypeInfo, 0, len(app.bindings))

	for recordType, b := range app.bindings {
		info := RecordTypeInfo{Type: recordType, Profiles: []string{}}
		for _, p := range b.Profiles() {
			info.Profiles = append(info.Profiles, string(p))
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })

	return infos
}

func startSpan(ctx context.Context, name, recordType string, profiles ...keys.Profile) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String(client.TraceAttributeRecordType, recordType)}
	for _, p := range profiles {
		attrs = append(attrs, attribute.String(client.TraceAttributeProfile, string(p)))
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Translate converts every source from the keys of one profile to another. The whole
// batch fails if any record fails.
func (app *translatorApp) Translate(ctx context.Context, recordType string, from, to keys.Profile, sources []types.Source) (result *Result, err error) {
	ctx, span := startSpan(ctx, "translate-records", recordType, from, to)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := app.binding(recordType)
	if err != nil {
		return nil, err
	}

	records := make([]*container.Object, 0, len(sources))

	for idx, src := range sources {
		dst := container.New()

		err = b.Translate(src, from, to, dst)
		if err != nil {
			err = fmt.Errorf("record %d: %w", idx, err)
			return nil, err
		}

		records = append(records, dst)
	}

	result = &Result{ID: uuid.NewString(), Records: records}

	logging.GetFromContext(ctx).Debug("records translated",
		"type", recordType, "from", from, "to", to, "count", len(records), "translation_id", result.ID,
	)

	return result, nil
}

func (app *translatorApp) Decode(ctx context.Context, recordType string, profile keys.Profile, sources []types.Source) (records []any, err error) {
	ctx, span := startSpan(ctx, "decode-records", recordType, profile)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := app.binding(recordType)
	if err != nil {
		return nil, err
	}

	records = make([]any, 0, len(sources))

	for idx, src := range sources {
		var r any
		r, err = b.Decode(src, profile)
		if err != nil {
			err = fmt.Errorf("record %d: %w", idx, err)
			return nil, err
		}

		records = append(records, r)
	}

	logging.GetFromContext(ctx).Debug("records decoded", "type", recordType, "profile", profile, "count", len(records))

	return records, nil
}

func (app *translatorApp) Encode(ctx context.Context, recordType string, profile keys.Profile, records []json.RawMessage) (result *Result, err error) {
	ctx, span := startSpan(ctx, "encode-records", recordType, profile)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := app.binding(recordType)
	if err != nil {
		return nil, err
	}

	encoded := make([]*container.Object, 0, len(records))

	for idx, record := range records {
		dst := container.New()

		err = b.Encode(record, profile, dst)
		if err != nil {
			err = fmt.Errorf("record %d: %w", idx, err)
			return nil, err
		}

		encoded = append(encoded, dst)
	}

	result = &Result{ID: uuid.NewString(), Records: encoded}

	logging.GetFromContext(ctx).Debug("records encoded",
		"type", recordType, "profile", profile, "count", len(encoded), "translation_id", result.ID,
	)

	return result, nil
}

// Collect queries every configured source of a record type and translates the records
// they return to the keys of profile to
func (app *translatorApp) Collect(ctx context.Context, recordType string, to keys.Profile) (result *Result, err error) {
	ctx, span := startSpan(ctx, "collect-records", recordType, to)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := app.binding(recordType)
	if err != nil {
		return nil, err
	}

	if err = requireKeySet(b, to); err != nil {
		return nil, err
	}

	sources, ok := app.sources[recordType]
	if !ok {
		err = fmt.Errorf("%w for record type %s", ErrNoSourceConfigured, recordType)
		return nil, err
	}

	records := []*container.Object{}

	for _, src := range sources {
		_, err = client.QueryObjects(ctx, src.client, src.path, func(page []*container.Object) error {
			offset := len(records)
			for idx, o := range page {
				dst := container.New()
				if err := b.Translate(o, src.profile, to, dst); err != nil {
					return fmt.Errorf("record %d: %w", offset+idx, err)
				}
				records = append(records, dst)
			}
			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	result = &Result{ID: uuid.NewString(), Records: records}

	logging.GetFromContext(ctx).Debug("records collected",
		"type", recordType, "to", to, "count", len(records), "translation_id", result.ID,
	)

	return result, nil
}
