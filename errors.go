package infolist

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every operation on a closed resource,
	// including a second call to Close
	ErrClosed = errors.New("infolist: use of closed resource")

	// ErrNotImplemented is returned by Resource.Close.
	// Types embedding Resource must provide their own Close
	ErrNotImplemented = errors.New("infolist: close not implemented")

	// ErrDone is returned by Cursor.Advance when the list has no more items.
	// It is the normal end of iteration, not a failure
	ErrDone = errors.New("infolist: no more items")

	// ErrNoItems is returned by One when the list is empty
	ErrNoItems = errors.New("infolist: list has no items")
)

// InvalidQueryError is returned when the host refuses to open a list
type InvalidQueryError struct {
	Name string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("infolist: invalid infolist: %q", e.Name)
}

// MissingFieldError is returned when reading a field the current item does not have
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("infolist: no field %q in item", e.Field)
}

// FieldTypeError is returned when a field's type tag is not one of
// the known types, or does not match the type asked for
type FieldTypeError struct {
	Field string
	Type  FieldType
	Want  FieldType // zero when the tag itself is unknown
}

func (e *FieldTypeError) Error() string {
	if e.Want != 0 {
		return fmt.Sprintf("infolist: field %q is %s, not %s", e.Field, e.Type, e.Want)
	}
	return fmt.Sprintf("infolist: invalid type %q for field %q", byte(e.Type), e.Field)
}
