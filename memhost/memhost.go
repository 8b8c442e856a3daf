// Package memhost is an in-memory [infolist.Host].
// It is useful in tests and for serving lists built by Go code.
package memhost

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
	"github.com/stephenafamo/infolist/internal/rowset"
)

// Field is one typed value of a row
type Field struct {
	Name  string
	Type  infolist.FieldType
	Value any
}

func Integer(name string, v int) Field {
	return Field{Name: name, Type: infolist.TypeInteger, Value: v}
}

func String(name string, v string) Field {
	return Field{Name: name, Type: infolist.TypeString, Value: v}
}

func Pointer(name string, v infolist.Pointer) Field {
	return Field{Name: name, Type: infolist.TypePointer, Value: v}
}

func Time(name string, v time.Time) Field {
	return Field{Name: name, Type: infolist.TypeTime, Value: v}
}

// Row is one item of a list
type Row []Field

// ListFunc builds the rows of a list when it is opened.
// pointer and arguments are the values given to [infolist.Open].
type ListFunc func(pointer infolist.Pointer, arguments string) ([]Row, error)

// Option configures a Host
type Option func(*Host)

// WithLogger sets the logger used to report misuse such as freeing
// an unknown handle. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// Host serves lists from memory
type Host struct {
	*rowset.Table

	mu     sync.RWMutex
	lists  map[string]ListFunc
	logger zerolog.Logger
}

var _ infolist.Host = (*Host)(nil)

// New creates a host with no lists
func New(opts ...Option) *Host {
	h := &Host{
		lists:  make(map[string]ListFunc),
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(h)
	}

	h.Table = rowset.NewTable(h.logger)
	return h
}

// Add registers a list with fixed rows, ignoring the open arguments
func (h *Host) Add(name string, rows ...Row) {
	h.AddFunc(name, func(infolist.Pointer, string) ([]Row, error) {
		return rows, nil
	})
}

// AddFunc registers a list whose rows are built every time it is opened
func (h *Host) AddFunc(name string, f ListFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lists[name] = f
}

// OpenQuery returns a null handle for lists that were never added
func (h *Host) OpenQuery(ctx context.Context, name string, pointer infolist.Pointer, arguments string) (infolist.Pointer, error) {
	h.mu.RLock()
	f, ok := h.lists[name]
	h.mu.RUnlock()

	if !ok {
		return "", nil
	}

	rows, err := f(pointer, arguments)
	if err != nil {
		return "", fmt.Errorf("building list %q: %w", name, err)
	}

	built := make([]*rowset.Row, len(rows))
	for i, r := range rows {
		row := rowset.NewRow(len(r))
		for _, f := range r {
			row.Set(f.Name, f.Type, f.Value)
		}
		built[i] = row
	}

	return h.Table.Add(name, &source{rows: built}), nil
}

type source struct {
	rows []*rowset.Row
	pos  int
}

func (s *source) Next() (*rowset.Row, bool, error) {
	if s.pos >= len(s.rows) {
		return nil, false, nil
	}

	row := s.rows[s.pos]
	s.pos++
	return row, true, nil
}

func (s *source) Close() error {
	return nil
}
