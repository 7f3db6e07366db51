package keys

import (
	"fmt"
	"sort"

	"github.com/diwise/record-translator/pkg/keyset/errors"
)

// Registry holds the key tables of a record type, one per profile. It is populated once
// and never modified, With returns a new registry.
type Registry[F Field] struct {
	recordType string
	tables     map[Profile]*Table[F]
}

func NewRegistry[F Field](recordType string, tables ...*Table[F]) (*Registry[F], error) {
	r := &Registry[F]{
		recordType: recordType,
		tables:     make(map[Profile]*Table[F], len(tables)),
	}

	for _, t := range tables {
		if t == nil {
			return nil, errors.NewInvalidKeySetError("nil key set passed to registry for " + recordType)
		}

		if t.recordType != recordType {
			return nil, errors.NewInvalidKeySetError(
				fmt.Sprintf("key set for %s can not be registered for %s", t.recordType, recordType),
			)
		}

		if _, exists := r.tables[t.profile]; exists {
			return nil, errors.NewInvalidKeySetError(
				fmt.Sprintf("duplicate key set %q for %s", t.profile, recordType),
			)
		}

		r.tables[t.profile] = t
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics if the tables are inconsistent
func MustRegistry[F Field](recordType string, tables ...*Table[F]) *Registry[F] {
	r, err := NewRegistry(recordType, tables...)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// MustTable is like NewTable but panics on invalid input
func MustTable[F Field](recordType string, profile Profile, names Names[F]) *Table[F] {
	t, err := NewTable(recordType, profile, names)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (r *Registry[F]) RecordType() string {
	if r == nil {
		return ""
	}
	return r.recordType
}

// Resolve returns the key table registered for a profile
func (r *Registry[F]) Resolve(p Profile) (*Table[F], error) {
	if r == nil {
		return nil, errors.NewKeySetNotFoundError("<nil>", string(p))
	}

	t, ok := r.tables[p]
	if !ok {
		return nil, errors.NewKeySetNotFoundError(r.recordType, string(p))
	}

	return t, nil
}

func (r *Registry[F]) Profiles() []Profile {
	if r == nil {
		return []Profile{}
	}

	profiles := make([]Profile, 0, len(r.tables))
	for p := range r.tables {
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i] < profiles[j] })

	return profiles
}

// With returns a copy of the registry where the given tables are added or replace
// the tables registered for the same profiles
func (r *Registry[F]) With(tables ...*Table[F]) (*Registry[F], error) {
	if r == nil {
		return nil, errors.NewInvalidKeySetError("can not add key sets to a missing registry")
	}

	merged := make(map[Profile]*Table[F], len(r.tables)+len(tables))
	for p, t := range r.tables {
		merged[p] = t
	}

	for _, t := range tables {
		if t == nil || t.recordType != r.recordType {
			return nil, errors.NewInvalidKeySetError("key set does not belong to " + r.recordType)
		}
		merged[t.profile] = t
	}

	return &Registry[F]{recordType: r.recordType, tables: merged}, nil
}

// Validate checks that every registered table has a key for every declared field
func (r *Registry[F]) Validate(declared []F) error {
	for _, p := range r.Profiles() {
		t := r.tables[p]
		for _, f := range declared {
			if _, err := t.Name(f); err != nil {
				return err
			}
		}
	}
	return nil
}
