// Package sqlhost serves infolists from a database/sql connection.
// Each list name is bound to a query; opening the list runs it.
package sqlhost

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
	"github.com/stephenafamo/infolist/internal/rowset"
)

// A Queryer that returns the concrete type *sql.Rows,
// such as *sql.DB, *sql.Tx or *sql.Conn
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Binder turns the open arguments of a list into query arguments
type Binder func(pointer infolist.Pointer, arguments string) []any

// NoArgs ignores the open arguments
func NoArgs(infolist.Pointer, string) []any {
	return nil
}

// PointerArg passes the pointer as the only query argument
func PointerArg(pointer infolist.Pointer, _ string) []any {
	return []any{string(pointer)}
}

// Option configures a Host
type Option func(*Host)

// WithLogger sets the logger used to report row errors,
// which the host API has no other way to surface
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

type statement struct {
	query string
	bind  Binder
}

// Host is an infolist.Host backed by database/sql
type Host struct {
	*rowset.Table

	db     Queryer
	logger zerolog.Logger

	mu    sync.RWMutex
	lists map[string]statement
}

var _ infolist.Host = (*Host)(nil)

// New creates a host running its queries on db
func New(db Queryer, opts ...Option) *Host {
	h := &Host{
		db:     db,
		logger: zerolog.Nop(),
		lists:  make(map[string]statement),
	}
	for _, o := range opts {
		o(h)
	}

	h.Table = rowset.NewTable(h.logger)
	return h
}

// Register binds a list name to a query. A nil binder is [NoArgs].
func (h *Host) Register(name, query string, bind Binder) {
	if bind == nil {
		bind = NoArgs
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lists[name] = statement{query: query, bind: bind}
}

// OpenQuery runs the query bound to name.
// Unknown names give a null handle, failing queries an error.
func (h *Host) OpenQuery(ctx context.Context, name string, pointer infolist.Pointer, arguments string) (infolist.Pointer, error) {
	h.mu.RLock()
	stmt, ok := h.lists[name]
	h.mu.RUnlock()

	if !ok {
		return "", nil
	}

	rows, err := h.db.QueryContext(ctx, stmt.query, stmt.bind(pointer, arguments)...)
	if err != nil {
		return "", fmt.Errorf("query for %q: %w", name, err)
	}

	cols, err := readColumns(rows)
	if err != nil {
		return "", fmt.Errorf("columns for %q: %w", name, err)
	}

	return h.Table.Add(name, &source{rows: rows, cols: cols}), nil
}

type columnReader interface {
	Columns() ([]string, error)
	Close() error
}

// readColumns closes rows when their columns cannot be read
func readColumns(rows columnReader) ([]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(err, rows.Close())
	}

	return cols, nil
}

type source struct {
	rows *sql.Rows
	cols []string
}

func (s *source) Next() (*rowset.Row, bool, error) {
	if !s.rows.Next() {
		return nil, false, s.rows.Err()
	}

	values := make([]any, len(s.cols))
	targets := make([]any, len(s.cols))
	for i := range values {
		targets[i] = &values[i]
	}

	if err := s.rows.Scan(targets...); err != nil {
		return nil, false, err
	}

	row, err := rowset.FromValues(s.cols, values)
	if err != nil {
		return nil, false, err
	}

	return row, true, nil
}

func (s *source) Close() error {
	return s.rows.Close()
}
