package container

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

type DecoratorFunc func(o *Object)

// Object is an ordered keyed container. Names keep the order they were first set in.
type Object struct {
	names  []string
	values map[string]any
}

var _ types.Container = &Object{}

func New(decorators ...DecoratorFunc) *Object {
	o := &Object{
		names:  []string{},
		values: map[string]any{},
	}

	for _, decorator := range decorators {
		decorator(o)
	}

	return o
}

// V adds a raw value to the container, as read from an external source
func V(name string, value any) DecoratorFunc {
	return func(o *Object) { o.put(name, value) }
}

// FromMap creates a container from a map, with names in lexical order
func FromMap(m map[string]any) *Object {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	o := New()
	for _, name := range names {
		o.put(name, m[name])
	}

	return o
}

func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Set stores a value under a name, overwriting any previous value in place. Values that can
// not be represented in JSON or YAML are rejected and leave the container untouched.
func (o *Object) Set(name string, value any) error {
	v, err := Normalize(name, value)
	if err != nil {
		return err
	}

	o.put(name, v)
	return nil
}

func (o *Object) Names() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

func (o *Object) Len() int {
	return len(o.names)
}

// Map returns a shallow copy of the contents
func (o *Object) Map() map[string]any {
	m := make(map[string]any, len(o.values))
	for k, v := range o.values {
		m[k] = v
	}
	return m
}

func (o *Object) put(name string, value any) {
	if o.values == nil {
		o.values = map[string]any{}
	}

	if _, exists := o.values[name]; !exists {
		o.names = append(o.names, name)
	}

	o.values[name] = value
}

func (o *Object) reset() {
	o.names = []string{}
	o.values = map[string]any{}
}

// Normalize converts a value to a representation that all supported container formats can carry
func Normalize(name string, value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, json.Number, json.RawMessage,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		[]string, []int, []bool, []any, map[string]any:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			break
		}
		return v, nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			break
		}
		return v, nil
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, errors.NewTypeUnsupportedError(name, value)
			}
		}
		return v, nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), nil
	case json.Marshaler:
		return v, nil
	}

	return nil, errors.NewTypeUnsupportedError(name, value)
}
