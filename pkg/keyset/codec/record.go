package codec

import (
	"fmt"

	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

// Record is implemented by pointers to record types that can be read from and written to
// keyed containers under any of the profiles in their registry
type Record[R any, F keys.Field] interface {
	*R

	KeySets() *keys.Registry[F]
	Fields() []F
	DecodeKeys(d *Decoder[F]) error
	EncodeKeys(e *Encoder[F]) error
}

func Decode[R any, F keys.Field, PR Record[R, F]](src types.Source, profile keys.Profile) (R, error) {
	var r R
	return DecodeWith[R, F, PR](PR(&r).KeySets(), src, profile)
}

// DecodeWith decodes a record using the tables of registry instead of the record's own.
// On failure the zero record is returned.
func DecodeWith[R any, F keys.Field, PR Record[R, F]](registry *keys.Registry[F], src types.Source, profile keys.Profile) (R, error) {
	var record R

	table, err := registry.Resolve(profile)
	if err != nil {
		return record, err
	}

	if src == nil {
		return record, fmt.Errorf("no source to decode %s from", table.RecordType())
	}

	err = PR(&record).DecodeKeys(NewDecoder(table, src))
	if err != nil {
		var zero R
		return zero, err
	}

	return record, nil
}

func Encode[R any, F keys.Field, PR Record[R, F]](record R, dst types.Sink, profile keys.Profile) error {
	return EncodeWith[R, F, PR](PR(&record).KeySets(), record, dst, profile)
}

// EncodeWith encodes a record using the tables of registry. dst is only written to when
// every field encoded successfully.
func EncodeWith[R any, F keys.Field, PR Record[R, F]](registry *keys.Registry[F], record R, dst types.Sink, profile keys.Profile) error {
	table, err := registry.Resolve(profile)
	if err != nil {
		return err
	}

	if dst == nil {
		return fmt.Errorf("no destination to encode %s to", table.RecordType())
	}

	enc := NewEncoder(table)

	err = PR(&record).EncodeKeys(enc)
	if err != nil {
		return err
	}

	return enc.Commit(dst)
}
