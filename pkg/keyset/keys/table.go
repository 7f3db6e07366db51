package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diwise/record-translator/pkg/keyset/errors"
)

// Field is implemented by the enumerated field identifiers that each record type declares
type Field interface {
	comparable
	fmt.Stringer
}

// Names maps field identifiers to the key used for them in a container
type Names[F Field] map[F]string

// Table is the immutable mapping from field identifiers to keys for one record type under one profile
type Table[F Field] struct {
	recordType string
	profile    Profile
	names      Names[F]
}

func NewTable[F Field](recordType string, profile Profile, names Names[F]) (*Table[F], error) {
	if recordType == "" {
		return nil, errors.NewInvalidKeySetError("key set must belong to a record type")
	}

	if !profile.Valid() {
		return nil, errors.NewUnknownProfileError(string(profile))
	}

	t := &Table[F]{
		recordType: recordType,
		profile:    profile,
		names:      make(Names[F], len(names)),
	}

	for f, name := range names {
		if name == "" {
			return nil, errors.NewInvalidKeySetError(
				fmt.Sprintf("empty key for field %s in key set %q for %s", f.String(), profile, recordType),
			)
		}
		t.names[f] = name
	}

	return t, nil
}

// TableFromConfig builds a table from field names, matched case insensitively against the declared fields
func TableFromConfig[F Field](recordType string, profile Profile, declared []F, names map[string]string) (*Table[F], error) {
	byName := make(map[string]F, len(declared))
	for _, f := range declared {
		byName[strings.ToLower(f.String())] = f
	}

	mapped := make(Names[F], len(names))
	for fieldName, key := range names {
		f, ok := byName[strings.ToLower(fieldName)]
		if !ok {
			return nil, errors.NewInvalidKeySetError(
				fmt.Sprintf("%s has no field named %q", recordType, fieldName),
			)
		}
		mapped[f] = key
	}

	return NewTable(recordType, profile, mapped)
}

func (t *Table[F]) RecordType() string {
	return t.recordType
}

func (t *Table[F]) Profile() Profile {
	return t.profile
}

func (t *Table[F]) Len() int {
	return len(t.names)
}

// Name translates a field identifier to the key used under this table's profile
func (t *Table[F]) Name(f F) (string, error) {
	name, ok := t.names[f]
	if !ok {
		return "", errors.NewKeyNotFoundError(t.recordType, string(t.profile), f.String())
	}
	return name, nil
}

func (t *Table[F]) Fields() []F {
	fields := make([]F, 0, len(t.names))
	for f := range t.names {
		fields = append(fields, f)
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].String() < fields[j].String()
	})

	return fields
}

// Names returns a copy of the mapping
func (t *Table[F]) Names() Names[F] {
	names := make(Names[F], len(t.names))
	for f, name := range t.names {
		names[f] = name
	}
	return names
}
