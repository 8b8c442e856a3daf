// Package pgxhost serves infolists from a pgx connection or pool.
package pgxhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
	"github.com/stephenafamo/infolist/internal/rowset"
)

// A Queryer that returns pgx.Rows, such as *pgx.Conn or *pgxpool.Pool
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Binder turns the open arguments of a list into query arguments
type Binder func(pointer infolist.Pointer, arguments string) []any

// NoArgs ignores the open arguments
func NoArgs(infolist.Pointer, string) []any {
	return nil
}

// PointerArg passes the pointer as the only query argument ($1)
func PointerArg(pointer infolist.Pointer, _ string) []any {
	return []any{string(pointer)}
}

// Option configures a Host
type Option func(*Host)

// WithLogger sets the logger used to report row errors
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

type statement struct {
	sql  string
	bind Binder
}

// Host is an infolist.Host backed by pgx
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
func (h *Host) Register(name, sql string, bind Binder) {
	if bind == nil {
		bind = NoArgs
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lists[name] = statement{sql: sql, bind: bind}
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

	rows, err := h.db.Query(ctx, stmt.sql, stmt.bind(pointer, arguments)...)
	if err != nil {
		return "", fmt.Errorf("query for %q: %w", name, err)
	}

	return h.Table.Add(name, &source{rows: rows}), nil
}

type source struct {
	rows pgx.Rows
	cols []string
}

func (s *source) columns() []string {
	if s.cols == nil {
		fields := s.rows.FieldDescriptions()
		s.cols = make([]string, len(fields))
		for i, field := range fields {
			s.cols[i] = field.Name
		}
	}

	return s.cols
}

func (s *source) Next() (*rowset.Row, bool, error) {
	if !s.rows.Next() {
		return nil, false, s.rows.Err()
	}

	values, err := s.rows.Values()
	if err != nil {
		return nil, false, err
	}

	row, err := rowset.FromValues(s.columns(), values)
	if err != nil {
		return nil, false, err
	}

	return row, true, nil
}

// Close releases the rows. Their error was already returned by Next.
func (s *source) Close() error {
	s.rows.Close()
	return nil
}
