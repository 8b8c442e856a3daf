package infolist

import (
	"context"
	"errors"
)

// One maps the first item of the named list to T.
// It returns ErrNoItems if the list is empty.
func One[T any](ctx context.Context, h Host, m Mapper[T], name string, opts ...OpenOption) (T, error) {
	var t T

	err := With(ctx, h, name, func(c *Cursor) error {
		it, err := c.Advance()
		if errors.Is(err, ErrDone) {
			return ErrNoItems
		}
		if err != nil {
			return err
		}

		t, err = m(ctx, it)
		return err
	}, opts...)

	return t, err
}

// All maps every item of the named list to T
func All[T any](ctx context.Context, h Host, m Mapper[T], name string, opts ...OpenOption) ([]T, error) {
	var results []T

	err := With(ctx, h, name, func(c *Cursor) error {
		for c.Next() {
			one, err := m(ctx, c.Item())
			if err != nil {
				return err
			}

			results = append(results, one)
		}

		return c.Err()
	}, opts...)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Snapshots clones every item of the named list
func Snapshots(ctx context.Context, h Host, name string, opts ...OpenOption) ([]Snapshot, error) {
	return All(ctx, h, SnapshotMapper, name, opts...)
}

// Each returns a function that can be used to iterate over the mapped items
// of the named list. The list is opened when the function is called and is
// closed when it returns, including when yield stops early.
// An error ends the iteration after being passed to yield.
func Each[T any](ctx context.Context, h Host, m Mapper[T], name string, opts ...OpenOption) func(func(T, error) bool) {
	return func(yield func(T, error) bool) {
		var t T

		err := With(ctx, h, name, func(c *Cursor) error {
			for c.Next() {
				one, err := m(ctx, c.Item())
				if err != nil {
					return err
				}

				if !yield(one, nil) {
					return nil
				}
			}

			return c.Err()
		}, opts...)
		if err != nil {
			yield(t, err)
		}
	}
}
