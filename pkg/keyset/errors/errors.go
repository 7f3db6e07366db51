package errors

import (
	"fmt"
)

var ErrKeySetNotFound = fmt.Errorf("key set not found")
var ErrKeyNotFound = fmt.Errorf("key not found")
var ErrFieldMissing = fmt.Errorf("field missing")
var ErrTypeMismatch = fmt.Errorf("type mismatch")
var ErrTypeUnsupported = fmt.Errorf("type unsupported")
var ErrUnknownProfile = fmt.Errorf("unknown profile")
var ErrUnknownRecordType = fmt.Errorf("unknown record type")
var ErrInvalidKeySet = fmt.Errorf("invalid key set")
var ErrInvalidRecord = fmt.Errorf("invalid record")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

// NewKeySetNotFoundError reports that no key table is registered for a record type under a profile
func NewKeySetNotFoundError(recordType, profile string) error {
	return &myError{
		msg:    fmt.Sprintf("no key set registered for %s in profile %q", recordType, profile),
		target: ErrKeySetNotFound,
	}
}

// NewKeyNotFoundError reports that a key table lacks an entry for a field
func NewKeyNotFoundError(recordType, profile, field string) error {
	return &myError{
		msg:    fmt.Sprintf("key set %q for %s has no key for field %s", profile, recordType, field),
		target: ErrKeyNotFound,
	}
}

func NewFieldMissingError(recordType, profile, field, name string) error {
	return &myError{
		msg:    fmt.Sprintf("field %s (key %q) is missing from %s source in profile %q", field, name, recordType, profile),
		target: ErrFieldMissing,
	}
}

// NewAttributeMissingError reports that a canonical record lacks a required attribute
func NewAttributeMissingError(recordType, attribute string) error {
	return &myError{
		msg:    fmt.Sprintf("%s record has no value for required attribute %q", recordType, attribute),
		target: ErrFieldMissing,
	}
}

func NewTypeMismatchError(recordType, field, name, expected string, value any) error {
	return &myError{
		msg:    fmt.Sprintf("value of %s.%s (key %q) is %T, can not be read as %s", recordType, field, name, value, expected),
		target: ErrTypeMismatch,
	}
}

func NewTypeUnsupportedError(name string, value any) error {
	return &myError{
		msg:    fmt.Sprintf("value of type %T for key %q can not be represented in a keyed container", value, name),
		target: ErrTypeUnsupported,
	}
}

func NewUnknownProfileError(profile string) error {
	return &myError{
		msg:    fmt.Sprintf("profile %q is not a known source profile", profile),
		target: ErrUnknownProfile,
	}
}

func NewUnknownRecordTypeError(recordType string) error {
	return &myError{
		msg:    fmt.Sprintf("record type %q is not registered", recordType),
		target: ErrUnknownRecordType,
	}
}

func NewInvalidKeySetError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidKeySet,
	}
}

func NewInvalidRecordError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidRecord,
	}
}
