package container

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type float64Valuer interface {
	Float64Value() (pgtype.Float8, error)
}

// FromRow creates a container from a database row, using the column names as keys
func FromRow(row pgx.CollectableRow) (*Object, error) {
	values, err := row.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read row values: %w", err)
	}

	fields := row.FieldDescriptions()
	if len(fields) != len(values) {
		return nil, fmt.Errorf("row has %d columns but %d values", len(fields), len(values))
	}

	o := New()

	for idx, fd := range fields {
		value, err := fromColumnValue(values[idx])
		if err != nil {
			return nil, fmt.Errorf("failed to read column %s: %w", fd.Name, err)
		}
		o.put(fd.Name, value)
	}

	return o, nil
}

func fromColumnValue(value any) (any, error) {
	switch v := value.(type) {
	case [16]byte:
		return uuid.UUID(v).String(), nil
	case float64Valuer:
		f, err := v.Float64Value()
		if err != nil {
			return nil, err
		}
		if !f.Valid {
			return nil, nil
		}
		return f.Float64, nil
	}

	return value, nil
}
