package container

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v2"
)

// ReadAll reads a single keyed object or a list of them from a yaml or json document. The
// returned batch flag is set when the document holds a list.
func ReadAll(body []byte, isYAML bool) (objects []*Object, batch bool, err error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, false, fmt.Errorf("document is empty")
	}

	if isYAML {
		return readYAML(body)
	}

	if body[0] == '[' {
		objects, err = FromSlice(body)
		return objects, true, err
	}

	o, err := FromJSON(body)
	if err != nil {
		return nil, false, err
	}

	return []*Object{o}, false, nil
}

// yaml may open with comments, directives or a document marker, so the shape of the
// document is decided by parsing it rather than by its first byte
func readYAML(body []byte) ([]*Object, bool, error) {
	var shape any
	if err := yaml.Unmarshal(body, &shape); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	switch shape.(type) {
	case []any:
		objects, err := FromYAMLSlice(body)
		return objects, true, err
	case map[any]any:
		o, err := FromYAML(body)
		if err != nil {
			return nil, false, err
		}
		return []*Object{o}, false, nil
	default:
		return nil, false, fmt.Errorf("document must hold a mapping or a list of mappings")
	}
}
