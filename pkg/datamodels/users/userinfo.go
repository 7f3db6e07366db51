package users

import (
	"github.com/diwise/record-translator/pkg/keyset/codec"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
)

//go:generate stringer -type=Field -output=field_string.go

// Field identifies the fields of a UserInfo record
type Field int

const (
	Username Field = iota
	Email
	Age
)

//UserInfoTypeName is a type name constant for UserInfo
const UserInfoTypeName string = "UserInfo"

var keySets = keys.MustRegistry(UserInfoTypeName,
	keys.MustTable(UserInfoTypeName, keys.Local, keys.Names[Field]{
		Username: "USER_NAME",
		Email:    "EMAIL",
		Age:      "AGE",
	}),
	keys.MustTable(UserInfoTypeName, keys.Remote, keys.Names[Field]{
		Username: "user_name",
		Email:    "email_address",
		Age:      "user_age",
	}),
	keys.MustTable(UserInfoTypeName, keys.Database, keys.Names[Field]{
		Username: "username",
		Email:    "email",
		Age:      "age",
	}),
)

type UserInfo struct {
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Age      int    `json:"age" yaml:"age"`
}

func (*UserInfo) KeySets() *keys.Registry[Field] {
	return keySets
}

func (*UserInfo) Fields() []Field {
	return []Field{Username, Email, Age}
}

func (u *UserInfo) DecodeKeys(d *codec.Decoder[Field]) (err error) {
	if u.Username, err = codec.DecodeField[string](d, Username); err != nil {
		return
	}
	if u.Email, err = codec.DecodeField[string](d, Email); err != nil {
		return
	}
	u.Age, err = codec.DecodeField[int](d, Age)
	return
}

func (u *UserInfo) EncodeKeys(e *codec.Encoder[Field]) error {
	if err := codec.EncodeField(e, Username, u.Username); err != nil {
		return err
	}
	if err := codec.EncodeField(e, Email, u.Email); err != nil {
		return err
	}
	return codec.EncodeField(e, Age, u.Age)
}

func Decode(src types.Source, profile keys.Profile) (UserInfo, error) {
	return codec.Decode[UserInfo, Field](src, profile)
}

func Encode(u UserInfo, dst types.Sink, profile keys.Profile) error {
	return codec.Encode[UserInfo, Field](u, dst, profile)
}

func Binding() codec.Binding {
	return codec.NewBinding[UserInfo, Field]()
}
