package infolist

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ICursor is the loop interface shared with database/sql style cursors
type ICursor interface {
	// Close the list and free the host handle
	Close() error
	// Prepare the next item
	Next() bool
	// Get the current item
	Item() *Item
	// Return the error that stopped Next, if any
	Err() error
}

var (
	_ ICursor = (*Cursor)(nil)
	_ Closer  = (*Cursor)(nil)
	_ Closer  = (*Item)(nil)
)

// OpenOption modifies how a list is opened
type OpenOption func(*openConfig)

type openConfig struct {
	pointer   Pointer
	arguments string
}

// WithPointer restricts the list to the object at the given pointer,
// e.g. a single buffer
func WithPointer(p Pointer) OpenOption {
	return func(c *openConfig) {
		c.pointer = p
	}
}

// WithArguments passes a host specific argument string, often a name mask
func WithArguments(args string) OpenOption {
	return func(c *openConfig) {
		c.arguments = args
	}
}

// Cursor is a single pass cursor over an infolist.
// Each call to Advance closes the previously returned *Item.
// The cursor must be closed by its owner, use [With] to make sure it is.
type Cursor struct {
	Resource

	host   Host
	handle Pointer
	name   string
	cfg    openConfig

	current *Item
	err     error
}

// Open asks the host for the named list
func Open(ctx context.Context, h Host, name string, opts ...OpenOption) (*Cursor, error) {
	var cfg openConfig
	for _, o := range opts {
		o(&cfg)
	}

	handle, err := h.OpenQuery(ctx, name, cfg.pointer, cfg.arguments)
	if err != nil {
		return nil, fmt.Errorf("infolist: opening %q: %w", name, err)
	}
	if handle.IsNull() {
		return nil, &InvalidQueryError{Name: name}
	}

	return &Cursor{
		host:    h,
		handle:  handle,
		name:    name,
		cfg:     cfg,
		current: newItem(nil, ""),
	}, nil
}

// With opens the named list, passes it to fn and closes it on the way out,
// whether fn returns normally, with an error or by panicking.
// Closing a cursor that fn already closed is reported as ErrClosed.
func With(ctx context.Context, h Host, name string, fn func(*Cursor) error, opts ...OpenOption) (err error) {
	c, err := Open(ctx, h, name, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return fn(c)
}

// Name returns the name the list was opened with
func (c *Cursor) Name() string {
	return c.name
}

// Integer reads an integer field of the current item straight from the host
func (c *Cursor) Integer(field string) (int, error) {
	if err := c.AssertOpen(); err != nil {
		return 0, err
	}

	return c.host.Integer(c.handle, field), nil
}

// String reads a string field of the current item straight from the host
func (c *Cursor) String(field string) (string, error) {
	if err := c.AssertOpen(); err != nil {
		return "", err
	}

	return c.host.String(c.handle, field), nil
}

// Pointer reads a pointer field of the current item straight from the host
func (c *Cursor) Pointer(field string) (Pointer, error) {
	if err := c.AssertOpen(); err != nil {
		return "", err
	}

	return c.host.Pointer(c.handle, field), nil
}

// Time reads a time field of the current item straight from the host
func (c *Cursor) Time(field string) (time.Time, error) {
	if err := c.AssertOpen(); err != nil {
		return time.Time{}, err
	}

	return c.host.Time(c.handle, field), nil
}

// Close frees the host handle. Items already returned become unreadable
// since they read through the cursor.
func (c *Cursor) Close() error {
	if err := c.Release(); err != nil {
		return err
	}

	c.host.FreeQuery(c.handle)
	return nil
}

// Advance moves to the next item and returns it.
// It returns ErrDone when the host has no more items, leaving the
// previous item open. Advancing again after ErrDone is left to the host.
func (c *Cursor) Advance() (*Item, error) {
	if err := c.AssertOpen(); err != nil {
		return nil, err
	}

	if !c.host.AdvanceQuery(c.handle) {
		return nil, ErrDone
	}

	// the caller may have closed it already
	if !c.current.Closed() {
		if err := c.current.Close(); err != nil {
			return nil, err
		}
	}

	c.current = newItem(c, c.host.Fields(c.handle))
	return c.current, nil
}

// Next advances the cursor and reports whether an item is available.
// Reaching the end of the list is not an error.
func (c *Cursor) Next() bool {
	if c.err != nil {
		return false
	}

	_, err := c.Advance()
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrDone):
		return false
	default:
		c.err = err
		return false
	}
}

// Item returns the item produced by the last successful Advance or Next
func (c *Cursor) Item() *Item {
	return c.current
}

// Err returns the error that stopped Next
func (c *Cursor) Err() error {
	return c.err
}
