package infolist

import (
	"fmt"
	"time"
)

// Snapshot holds the values of an item copied out of the host.
// It stays valid after the item and its cursor are closed.
type Snapshot map[string]any

// Item is a view over the current row of a [Cursor].
// Values are not loaded until asked for, and the view is only valid until
// the cursor advances again. Use [Item.Clone] to keep the values longer.
type Item struct {
	Resource

	cursor *Cursor // nil for the placeholder held by a fresh cursor
	types  map[string]FieldType
	order  []string
}

func newItem(c *Cursor, fieldList string) *Item {
	types, order := parseFields(fieldList)
	return &Item{
		cursor: c,
		types:  types,
		order:  order,
	}
}

// Fields returns the field names in the order the host listed them
func (it *Item) Fields() ([]string, error) {
	if err := it.AssertOpen(); err != nil {
		return nil, err
	}

	f := make([]string, len(it.order))
	copy(f, it.order)
	return f, nil
}

// Type returns the type tag of the named field
func (it *Item) Type(field string) (FieldType, error) {
	if err := it.AssertOpen(); err != nil {
		return 0, err
	}

	t, ok := it.types[field]
	if !ok {
		return 0, &MissingFieldError{Field: field}
	}
	return t, nil
}

// Get reads the named field using the getter matching its type.
// The returned value is an int, string, Pointer or time.Time.
func (it *Item) Get(field string) (any, error) {
	if err := it.AssertOpen(); err != nil {
		return nil, err
	}

	typ, ok := it.types[field]
	if !ok {
		return nil, &MissingFieldError{Field: field}
	}

	switch typ {
	case TypeInteger:
		return it.cursor.Integer(field)
	case TypeString:
		return it.cursor.String(field)
	case TypePointer:
		return it.cursor.Pointer(field)
	case TypeTime:
		return it.cursor.Time(field)
	default:
		return nil, &FieldTypeError{Field: field, Type: typ}
	}
}

func (it *Item) typed(field string, want FieldType) error {
	if err := it.AssertOpen(); err != nil {
		return err
	}

	typ, ok := it.types[field]
	if !ok {
		return &MissingFieldError{Field: field}
	}
	if typ != want {
		return &FieldTypeError{Field: field, Type: typ, Want: want}
	}

	return nil
}

// Integer reads an integer field, failing if the field has another type
func (it *Item) Integer(field string) (int, error) {
	if err := it.typed(field, TypeInteger); err != nil {
		return 0, err
	}
	return it.cursor.Integer(field)
}

// String reads a string field, failing if the field has another type
func (it *Item) String(field string) (string, error) {
	if err := it.typed(field, TypeString); err != nil {
		return "", err
	}
	return it.cursor.String(field)
}

// Pointer reads a pointer field, failing if the field has another type
func (it *Item) Pointer(field string) (Pointer, error) {
	if err := it.typed(field, TypePointer); err != nil {
		return "", err
	}
	return it.cursor.Pointer(field)
}

// Time reads a time field, failing if the field has another type
func (it *Item) Time(field string) (time.Time, error) {
	if err := it.typed(field, TypeTime); err != nil {
		return time.Time{}, err
	}
	return it.cursor.Time(field)
}

// Clone reads every field and returns them detached from the cursor.
// This is the only way to keep an item's values past the current step.
//
//	snap, err := item.Clone()
//	if err != nil {
//		return err
//	}
//	buffers = append(buffers, snap)
func (it *Item) Clone() (Snapshot, error) {
	if err := it.AssertOpen(); err != nil {
		return nil, err
	}

	s := make(Snapshot, len(it.order))
	for _, name := range it.order {
		v, err := it.Get(name)
		if err != nil {
			return nil, err
		}
		s[name] = v
	}

	return s, nil
}

// Close marks the item as unusable. The cursor's handle is untouched.
func (it *Item) Close() error {
	return it.Release()
}

// Value retrieves the named field from an item as T.
// T must match the field's type: int, string, Pointer or time.Time.
func Value[T any](it *Item, field string) (T, error) {
	var t T

	v, err := it.Get(field)
	if err != nil {
		return t, err
	}

	t, ok := v.(T)
	if !ok {
		err := fmt.Errorf("field %q holds %T, not %T", field, v, t)
		return t, createError(err, "wrong type", field)
	}

	return t, nil
}
