package container

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v2"
)

// FromYAML reads a yaml mapping, keeping the order of its keys. Nested values are
// converted to the shapes encoding/json would produce.
func FromYAML(body []byte) (*Object, error) {
	ms := yaml.MapSlice{}
	err := yaml.Unmarshal(body, &ms)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal keyed container: %w", err)
	}

	return fromMapSlice(ms)
}

// FromYAMLSlice reads a yaml sequence of mappings
func FromYAMLSlice(body []byte) ([]*Object, error) {
	items := []yaml.MapSlice{}
	err := yaml.Unmarshal(body, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal keyed containers: %w", err)
	}

	objects := make([]*Object, 0, len(items))

	for _, item := range items {
		o, err := fromMapSlice(item)
		if err != nil {
			return nil, err
		}

		objects = append(objects, o)
	}

	return objects, nil
}

func fromMapSlice(ms yaml.MapSlice) (*Object, error) {
	o := New()

	for _, item := range ms {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("keys must be strings, found %v (%T)", item.Key, item.Key)
		}

		value, err := fromYAMLValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to read value of %s: %w", name, err)
		}

		o.put(name, value)
	}

	return o, nil
}

func (o Object) MarshalYAML() (interface{}, error) {
	ms := make(yaml.MapSlice, 0, len(o.names))

	for _, name := range o.names {
		ms = append(ms, yaml.MapItem{Key: name, Value: toYAMLValue(o.values[name])})
	}

	return ms, nil
}

func fromYAMLValue(value any) (any, error) {
	switch v := value.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(v))
		for _, item := range v {
			name, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("keys must be strings, found %v (%T)", item.Key, item.Key)
			}
			nested, err := fromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			m[name] = nested
		}
		return m, nil
	case map[interface{}]interface{}:
		m := make(map[string]any, len(v))
		for k, val := range v {
			name, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("keys must be strings, found %v (%T)", k, k)
			}
			nested, err := fromYAMLValue(val)
			if err != nil {
				return nil, err
			}
			m[name] = nested
		}
		return m, nil
	case []interface{}:
		s := make([]any, 0, len(v))
		for _, val := range v {
			nested, err := fromYAMLValue(val)
			if err != nil {
				return nil, err
			}
			s = append(s, nested)
		}
		return s, nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), nil
	}

	return value, nil
}

func toYAMLValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return string(v)
		}
		return toYAMLValue(decoded)
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = toYAMLValue(val)
		}
		return m
	case []any:
		s := make([]any, 0, len(v))
		for _, val := range v {
			s = append(s, toYAMLValue(val))
		}
		return s
	}

	return value
}
