package container

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	keyerrors "github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matryer/is"
	"gopkg.in/yaml.v2"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	is := is.New(t)

	o := New()
	is.NoErr(o.Set("user_name", "Braddles"))
	is.NoErr(o.Set("email_address", "braddles@example.com"))
	is.NoErr(o.Set("user_age", 42))
	is.NoErr(o.Set("user_name", "Brad"))

	is.Equal(o.Names(), []string{"user_name", "email_address", "user_age"})

	b, err := json.Marshal(o)
	is.NoErr(err)
	is.Equal(string(b), `{"user_name":"Brad","email_address":"braddles@example.com","user_age":42}`)
}

func TestSetRejectsUnsupportedValuesAndLeavesObjectUntouched(t *testing.T) {
	is := is.New(t)

	o := New(V("a", "b"))

	err := o.Set("ch", make(chan int))
	is.True(errors.Is(err, keyerrors.ErrTypeUnsupported)) // channels can not be stored

	err = o.Set("nan", math.NaN())
	is.True(errors.Is(err, keyerrors.ErrTypeUnsupported)) // NaN can not be stored

	is.Equal(o.Len(), 1)
}

func TestSetStoresTimeAsRFC3339(t *testing.T) {
	is := is.New(t)

	o := New()
	is.NoErr(o.Set("at", time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))))

	v, ok := o.Get("at")
	is.True(ok)
	is.Equal(v, "2024-05-01T10:00:00Z")
}

func TestFromJSONPreservesOrderAndNumbers(t *testing.T) {
	is := is.New(t)

	o, err := FromJSON([]byte(`{"USER_NAME":"Braddles","AGE":42,"tags":["a","b"],"nested":{"x":1.5}}`))
	is.NoErr(err)
	is.Equal(o.Names(), []string{"USER_NAME", "AGE", "tags", "nested"})

	age, _ := o.Get("AGE")
	is.Equal(age, json.Number("42"))

	b, err := json.Marshal(o)
	is.NoErr(err)
	is.Equal(string(b), `{"USER_NAME":"Braddles","AGE":42,"tags":["a","b"],"nested":{"x":1.5}}`)
}

func TestFromJSONFailsForNonObjects(t *testing.T) {
	is := is.New(t)

	_, err := FromJSON([]byte(`["USER_NAME"]`))
	is.True(err != nil) // arrays are not keyed containers
}

func TestFromSlice(t *testing.T) {
	is := is.New(t)

	objects, err := FromSlice([]byte(`[{"a":1},{"b":2,"c":3}]`))
	is.NoErr(err)
	is.Equal(len(objects), 2)
	is.Equal(objects[1].Names(), []string{"b", "c"})

	_, err = FromSlice([]byte(`[{"a":1},null]`))
	is.True(err != nil) // null is not a keyed container
}

func TestFromMapSortsNames(t *testing.T) {
	is := is.New(t)

	o := FromMap(map[string]any{"b": 1, "a": 2})
	is.Equal(o.Names(), []string{"a", "b"})
}

func TestFromYAML(t *testing.T) {
	is := is.New(t)

	o, err := FromYAML([]byte("user_name: Braddles\nemail_address: braddles@example.com\nuser_age: 42\nlocation:\n  city: Sundsvall\n"))
	is.NoErr(err)
	is.Equal(o.Names(), []string{"user_name", "email_address", "user_age", "location"})

	age, _ := o.Get("user_age")
	is.Equal(age, 42)

	location, _ := o.Get("location")
	is.Equal(location, map[string]any{"city": "Sundsvall"})
}

func TestFromYAMLSlice(t *testing.T) {
	is := is.New(t)

	objects, err := FromYAMLSlice([]byte("- a: 1\n- b: x\n  c: y\n"))
	is.NoErr(err)
	is.Equal(len(objects), 2)
	is.Equal(objects[1].Names(), []string{"b", "c"})
}

func TestMarshalYAMLKeepsOrderAndConvertsNumbers(t *testing.T) {
	is := is.New(t)

	o, err := FromJSON([]byte(`{"z":"last","age":42,"ratio":0.5}`))
	is.NoErr(err)

	b, err := yaml.Marshal(o)
	is.NoErr(err)
	is.Equal(string(b), "z: last\nage: 42\nratio: 0.5\n")
}

type fakeRow struct {
	fields []pgconn.FieldDescription
	values []any
}

func (r fakeRow) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r fakeRow) Scan(dest ...any) error                       { return nil }
func (r fakeRow) Values() ([]any, error)                       { return r.values, nil }
func (r fakeRow) RawValues() [][]byte                          { return nil }

func TestFromRowUsesColumnNames(t *testing.T) {
	is := is.New(t)

	observed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := [16]byte{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}

	row := fakeRow{
		fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "username"}, {Name: "age"}, {Name: "observed_at"}, {Name: "temp"}},
		values: []any{id, "Braddles", int32(42), observed, pgtype.Numeric{}},
	}

	o, err := FromRow(row)
	is.NoErr(err)
	is.Equal(o.Names(), []string{"id", "username", "age", "observed_at", "temp"})

	v, _ := o.Get("id")
	is.Equal(v, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	v, _ = o.Get("age")
	is.Equal(v, int32(42))

	v, _ = o.Get("observed_at")
	is.Equal(v, observed)

	v, ok := o.Get("temp")
	is.True(ok)
	is.Equal(v, nil) // invalid numerics are read as null
}

func TestReadAllDetectsListsInBothFormats(t *testing.T) {
	is := is.New(t)

	objects, batch, err := ReadAll([]byte(` {"a":1} `), false)
	is.NoErr(err)
	is.True(!batch)
	is.Equal(len(objects), 1)

	objects, batch, err = ReadAll([]byte(`[{"a":1},{"a":2}]`), false)
	is.NoErr(err)
	is.True(batch)
	is.Equal(len(objects), 2)

	objects, batch, err = ReadAll([]byte("- a: 1\n- a: 2\n"), true)
	is.NoErr(err)
	is.True(batch)
	is.Equal(len(objects), 2)

	_, _, err = ReadAll([]byte("  \n"), true)
	is.True(err != nil) // empty documents should be rejected
}

func TestReadAllDecidesYAMLShapeByParsing(t *testing.T) {
	is := is.New(t)

	objects, batch, err := ReadAll([]byte("---\nUSER_NAME: Braddles\n"), true)
	is.NoErr(err)
	is.True(!batch)
	is.Equal(len(objects), 1)
	name, _ := objects[0].Get("USER_NAME")
	is.Equal(name, "Braddles")

	objects, batch, err = ReadAll([]byte("# users\n- USER_NAME: Braddles\n"), true)
	is.NoErr(err)
	is.True(batch)
	is.Equal(len(objects), 1)

	objects, batch, err = ReadAll([]byte("[{USER_NAME: Braddles}, {USER_NAME: Tilly}]"), true)
	is.NoErr(err)
	is.True(batch)
	is.Equal(len(objects), 2)

	_, _, err = ReadAll([]byte("# nothing but a comment\n"), true)
	is.True(err != nil)

	_, _, err = ReadAll([]byte("just a string"), true)
	is.True(err != nil)
}
