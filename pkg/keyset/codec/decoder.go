package codec

import (
	"github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

// Decoder reads the fields of one record from a keyed container, translating field
// identifiers to keys with the table of the profile the container was produced under.
type Decoder[F keys.Field] struct {
	table *keys.Table[F]
	src   types.Source
}

func NewDecoder[F keys.Field](table *keys.Table[F], src types.Source) *Decoder[F] {
	return &Decoder[F]{table: table, src: src}
}

func (d *Decoder[F]) Profile() keys.Profile {
	return d.table.Profile()
}

func (d *Decoder[F]) RecordType() string {
	return d.table.RecordType()
}

// Has reports whether the container holds a value for a field
func (d *Decoder[F]) Has(f F) (bool, error) {
	_, _, found, err := d.lookup(f)
	return found, err
}

func (d *Decoder[F]) lookup(f F) (string, any, bool, error) {
	name, err := d.table.Name(f)
	if err != nil {
		return "", nil, false, err
	}

	raw, found := d.src.Get(name)
	return name, raw, found, nil
}

// DecodeField reads a required field. A missing key fails with ErrFieldMissing and a value
// that can not be read as T, including null, fails with ErrTypeMismatch.
func DecodeField[T any, F keys.Field](d *Decoder[F], f F) (T, error) {
	var zero T

	name, raw, found, err := d.lookup(f)
	if err != nil {
		return zero, err
	}

	if !found {
		return zero, errors.NewFieldMissingError(d.RecordType(), string(d.Profile()), f.String(), name)
	}

	v, ok := convert[T](raw)
	if !ok {
		return zero, errors.NewTypeMismatchError(d.RecordType(), f.String(), name, typeName[T](), raw)
	}

	return v, nil
}

// DecodeOptional reads an optional field. Missing keys and null values yield nil, all
// other failures are reported as for DecodeField.
func DecodeOptional[T any, F keys.Field](d *Decoder[F], f F) (*T, error) {
	name, raw, found, err := d.lookup(f)
	if err != nil {
		return nil, err
	}

	if !found || raw == nil {
		return nil, nil
	}

	v, ok := convert[T](raw)
	if !ok {
		return nil, errors.NewTypeMismatchError(d.RecordType(), f.String(), name, typeName[T](), raw)
	}

	return &v, nil
}
