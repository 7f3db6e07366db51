package container

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

func FromJSON(body []byte) (*Object, error) {
	o := New()
	err := json.Unmarshal(body, o)

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal keyed container: %w", err)
	}

	return o, nil
}

// FromSlice unmarshals a json array of objects
func FromSlice(body []byte) ([]*Object, error) {
	objects := []*Object{}
	err := json.Unmarshal(body, &objects)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal keyed containers: %w", err)
	}

	for idx, o := range objects {
		if o == nil {
			return nil, fmt.Errorf("element %d is not an object", idx)
		}
	}

	return objects, nil
}

func (o Object) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for idx, name := range o.names {
		if idx > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(o.values[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value of %s: %w", name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("keyed container must be a json object")
	}

	o.reset()

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}

		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var value any
		if err = dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value of %s: %w", name, err)
		}

		o.put(name, value)
	}

	if _, err = dec.Token(); err != nil && err != io.EOF {
		return err
	}

	return nil
}
