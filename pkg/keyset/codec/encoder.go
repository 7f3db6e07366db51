package codec

import (
	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

// Encoder collects the fields of one record under the keys of a profile. Nothing is written
// to the destination until Commit is called.
type Encoder[F keys.Field] struct {
	table  *keys.Table[F]
	staged *container.Object
}

func NewEncoder[F keys.Field](table *keys.Table[F]) *Encoder[F] {
	return &Encoder[F]{table: table, staged: container.New()}
}

func (e *Encoder[F]) Profile() keys.Profile {
	return e.table.Profile()
}

func (e *Encoder[F]) RecordType() string {
	return e.table.RecordType()
}

// Commit writes the staged values to dst in the order they were encoded
func (e *Encoder[F]) Commit(dst types.Sink) error {
	for _, name := range e.staged.Names() {
		v, _ := e.staged.Get(name)
		if err := dst.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

func EncodeField[T any, F keys.Field](e *Encoder[F], f F, value T) error {
	name, err := e.table.Name(f)
	if err != nil {
		return err
	}

	return e.staged.Set(name, value)
}

// EncodeOptional encodes value if it is not nil. The field must still have a key.
func EncodeOptional[T any, F keys.Field](e *Encoder[F], f F, value *T) error {
	name, err := e.table.Name(f)
	if err != nil {
		return err
	}

	if value == nil {
		return nil
	}

	return e.staged.Set(name, *value)
}
