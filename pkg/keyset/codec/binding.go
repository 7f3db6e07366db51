package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

// Binding exposes a record type without its Go type, so that services can pick record
// types by name at runtime
type Binding interface {
	RecordType() string
	Profiles() []keys.Profile
	Validate() error
	WithKeySet(profile keys.Profile, names map[string]string) (Binding, error)

	Decode(src types.Source, profile keys.Profile) (any, error)
	Encode(record json.RawMessage, profile keys.Profile, dst types.Sink) error
	Translate(src types.Source, from, to keys.Profile, dst types.Sink) error
}

type binding[R any, F keys.Field, PR Record[R, F]] struct {
	registry *keys.Registry[F]
	fields   []F
	required []string
}

func NewBinding[R any, F keys.Field, PR Record[R, F]]() Binding {
	var r R
	return &binding[R, F, PR]{
		registry: PR(&r).KeySets(),
		fields:   PR(&r).Fields(),
		required: requiredAttributes(reflect.TypeOf(r)),
	}
}

// requiredAttributes lists the json names of the attributes a canonical record must carry,
// which are all exported fields that are neither pointers nor tagged omitempty
func requiredAttributes(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}

	required := []string{}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}

		if strings.Contains(opts, "omitempty") || sf.Type.Kind() == reflect.Pointer {
			continue
		}

		required = append(required, name)
	}

	return required
}

func (b *binding[R, F, PR]) RecordType() string {
	return b.registry.RecordType()
}

func (b *binding[R, F, PR]) Profiles() []keys.Profile {
	return b.registry.Profiles()
}

// Validate checks that every key set covers every declared field of the record
func (b *binding[R, F, PR]) Validate() error {
	return b.registry.Validate(b.fields)
}

func (b *binding[R, F, PR]) WithKeySet(profile keys.Profile, names map[string]string) (Binding, error) {
	table, err := keys.TableFromConfig(b.RecordType(), profile, b.fields, names)
	if err != nil {
		return nil, err
	}

	registry, err := b.registry.With(table)
	if err != nil {
		return nil, err
	}

	return &binding[R, F, PR]{registry: registry, fields: b.fields, required: b.required}, nil
}

func (b *binding[R, F, PR]) Decode(src types.Source, profile keys.Profile) (any, error) {
	r, err := DecodeWith[R, F, PR](b.registry, src, profile)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Encode reads a record from its canonical json form and encodes it under profile. Every
// required attribute must be present and not null, no defaults are filled in.
func (b *binding[R, F, PR]) Encode(record json.RawMessage, profile keys.Profile, dst types.Sink) error {
	if _, err := b.registry.Resolve(profile); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(record)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.NewInvalidRecordError(fmt.Sprintf("a %s record must be a json object", b.RecordType()))
	}

	attributes := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &attributes); err != nil {
		return errors.NewInvalidRecordError(fmt.Sprintf("failed to read %s: %s", b.RecordType(), err.Error()))
	}

	var r R

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&r); err != nil {
		return errors.NewInvalidRecordError(fmt.Sprintf("failed to read %s: %s", b.RecordType(), err.Error()))
	}

	// encoding/json matches attribute names case insensitively
	present := make(map[string]bool, len(attributes))
	for name, value := range attributes {
		if string(bytes.TrimSpace(value)) != "null" {
			present[strings.ToLower(name)] = true
		}
	}

	for _, name := range b.required {
		if !present[strings.ToLower(name)] {
			return errors.NewAttributeMissingError(b.RecordType(), name)
		}
	}

	return EncodeWith[R, F, PR](b.registry, r, dst, profile)
}

// Translate decodes a record under one profile and encodes it under another. Both key sets
// are resolved before the source is read.
func (b *binding[R, F, PR]) Translate(src types.Source, from, to keys.Profile, dst types.Sink) error {
	if _, err := b.registry.Resolve(to); err != nil {
		return err
	}

	r, err := DecodeWith[R, F, PR](b.registry, src, from)
	if err != nil {
		return err
	}

	return EncodeWith[R, F, PR](b.registry, r, dst, to)
}
