package infolist

// Closer is implemented by every resource in this package
type Closer interface {
	AssertOpen() error
	Close() error
}

// Resource tracks whether an object has been closed.
// It is meant to be embedded: the embedding type overrides Close and
// calls Release from it, and calls AssertOpen before touching its state.
//
// The zero value is open.
type Resource struct {
	closed bool
}

// AssertOpen returns ErrClosed once the resource has been released
func (r *Resource) AssertOpen() error {
	if r.closed {
		return ErrClosed
	}

	return nil
}

// Closed reports whether the resource has been released
func (r *Resource) Closed() bool {
	return r.closed
}

// Release marks the resource as closed.
// Releasing twice is an error, the same as any other use after close.
func (r *Resource) Release() error {
	if err := r.AssertOpen(); err != nil {
		return err
	}

	r.closed = true
	return nil
}

// Close always fails, embedders must provide their own
func (r *Resource) Close() error {
	return ErrNotImplemented
}
