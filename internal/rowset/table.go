// Package rowset holds the handle bookkeeping shared by the hosts
// implemented in Go: a table of open lists, each producing rows on demand.
package rowset

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
)

// Source produces the rows of one open list
type Source interface {
	// Next returns the next row, or false when there are no more
	Next() (*Row, bool, error)
	Close() error
}

type entry struct {
	name    string
	src     Source
	current *Row // guarded by Table.mu
}

// Table implements every host call except OpenQuery, which is left to
// the host embedding it. It is safe for concurrent use, except that one
// handle must not be advanced from two goroutines at once since its
// source is not. Rows are never modified once produced.
type Table struct {
	mu     sync.Mutex
	next   uint64
	open   map[infolist.Pointer]*entry
	logger zerolog.Logger
}

// NewTable creates an empty table logging source failures to logger
func NewTable(logger zerolog.Logger) *Table {
	return &Table{
		open:   make(map[infolist.Pointer]*entry),
		logger: logger,
	}
}

// Add registers an open source and returns its handle
func (t *Table) Add(name string, src Source) infolist.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	handle := infolist.Pointer(fmt.Sprintf("0x%x", t.next))
	t.open[handle] = &entry{name: name, src: src}
	return handle
}

// Open returns the number of handles not yet freed
func (t *Table) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.open)
}

func (t *Table) lookup(handle infolist.Pointer) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.open[handle]
}

func (t *Table) current(handle infolist.Pointer) *Row {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.open[handle]
	if e == nil {
		return nil
	}
	return e.current
}

func (t *Table) FreeQuery(handle infolist.Pointer) {
	t.mu.Lock()
	e, ok := t.open[handle]
	delete(t.open, handle)
	t.mu.Unlock()

	if !ok {
		t.logger.Warn().Str("handle", string(handle)).Msg("free of unknown infolist handle")
		return
	}

	if err := e.src.Close(); err != nil {
		t.logger.Error().Err(err).Str("name", e.name).Msg("closing infolist source")
	}
}

// AdvanceQuery moves to the next row. A source error ends the list,
// the host API has no way to report it other than logging.
func (t *Table) AdvanceQuery(handle infolist.Pointer) bool {
	e := t.lookup(handle)
	if e == nil {
		return false
	}

	row, ok, err := e.src.Next()
	if err != nil {
		t.logger.Error().Err(err).Str("name", e.name).Msg("reading infolist row")
		ok = false
	}
	if !ok {
		row = nil
	}

	t.mu.Lock()
	e.current = row
	t.mu.Unlock()

	return ok
}

func (t *Table) Fields(handle infolist.Pointer) string {
	return t.current(handle).Fields()
}

func (t *Table) Integer(handle infolist.Pointer, field string) int {
	return t.current(handle).Integer(field)
}

func (t *Table) String(handle infolist.Pointer, field string) string {
	return t.current(handle).String(field)
}

func (t *Table) Pointer(handle infolist.Pointer, field string) infolist.Pointer {
	return t.current(handle).Pointer(field)
}

func (t *Table) Time(handle infolist.Pointer, field string) time.Time {
	return t.current(handle).Time(field)
}
