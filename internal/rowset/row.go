package rowset

import (
	"time"

	"github.com/stephenafamo/infolist"
)

// Row is one row of a list served by a Go host
type Row struct {
	names  []string
	types  map[string]infolist.FieldType
	values map[string]any
}

// NewRow creates an empty row with room for n fields
func NewRow(n int) *Row {
	return &Row{
		names:  make([]string, 0, n),
		types:  make(map[string]infolist.FieldType, n),
		values: make(map[string]any, n),
	}
}

// Set adds or replaces a field. Setting a field twice keeps its position.
func (r *Row) Set(name string, typ infolist.FieldType, value any) {
	if _, ok := r.types[name]; !ok {
		r.names = append(r.names, name)
	}
	r.types[name] = typ
	r.values[name] = value
}

// Fields encodes the row's field list
func (r *Row) Fields() string {
	if r == nil {
		return ""
	}
	return infolist.FormatFields(r.names, r.types)
}

// The getters answer like the chat client does:
// a missing field or a field of another type reads as the zero value.

func (r *Row) Integer(name string) int {
	return get[int](r, name, infolist.TypeInteger)
}

func (r *Row) String(name string) string {
	return get[string](r, name, infolist.TypeString)
}

func (r *Row) Pointer(name string) infolist.Pointer {
	return get[infolist.Pointer](r, name, infolist.TypePointer)
}

func (r *Row) Time(name string) time.Time {
	return get[time.Time](r, name, infolist.TypeTime)
}

func get[T any](r *Row, name string, typ infolist.FieldType) T {
	var t T
	if r == nil || r.types[name] != typ {
		return t
	}

	v, _ := r.values[name].(T)
	return v
}
