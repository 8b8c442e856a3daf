package infolist

import (
	"context"
	"errors"
)

// Mapper maps the current item of a list to T.
// It is called once per item, while the item is still open,
// so it must not keep the item around.
type Mapper[T any] func(context.Context, *Item) (T, error)

// The generator functions do not return an error themselves
// so we return a mapper that only returns an error instead
func errorMapper[T any](err error, meta ...string) Mapper[T] {
	err = createError(err, meta...)

	return func(context.Context, *Item) (T, error) {
		var t T
		return t, err
	}
}

// Returns a [MappingError] with some optional metadata
func createError(err error, meta ...string) error {
	if me, ok := err.(*MappingError); ok && len(meta) == 0 {
		return me
	}

	return &MappingError{cause: err, meta: meta}
}

// MappingError wraps another error and holds some additional metadata
type MappingError struct {
	meta  []string // easy compare
	cause error
}

// Unwrap returns the wrapped error
func (m *MappingError) Unwrap() error {
	return m.cause
}

// Error implements the error interface
func (m *MappingError) Error() string {
	if m.cause == nil {
		return "infolist: mapping error"
	}
	return m.cause.Error()
}

// Equal makes it easy to compare mapping errors
func (m *MappingError) Equal(err error) bool {
	var m2 *MappingError
	if !errors.As(err, &m2) {
		return errors.Is(m, err) || errors.Is(err, m)
	}

	if len(m.meta) != len(m2.meta) {
		return false
	}

	// if no meta, the error strings should match exactly
	if len(m.meta) == 0 {
		return m.Error() == m2.Error()
	}

	for k := range m.meta {
		if m.meta[k] != m2.meta[k] {
			return false
		}
	}

	return true
}

// SnapshotMapper clones every item
func SnapshotMapper(_ context.Context, it *Item) (Snapshot, error) {
	return it.Clone()
}

// FieldMapper maps a single field by name
func FieldMapper[T any](name string) Mapper[T] {
	return func(_ context.Context, it *Item) (T, error) {
		return Value[T](it, name)
	}
}

// PointerMapper maps every item to the pointer field with the given name,
// the usual way of collecting the objects a list describes
func PointerMapper(name string) Mapper[Pointer] {
	return func(_ context.Context, it *Item) (Pointer, error) {
		return it.Pointer(name)
	}
}
