package infolist

import (
	"context"
	"time"
)

// Pointer is an opaque pointer as handed out by the host, usually
// formatted as a hex address such as "0x55d0c0a1b2c0"
type Pointer string

// IsNull reports whether the pointer is the host's null pointer
func (p Pointer) IsNull() bool {
	return p == "" || p == "0x0"
}

// Host is the set of foreign calls the cursor is built on.
// Implementations own every failure mode of the getters: asking for a
// field that does not exist is answered with the zero value, not an error.
type Host interface {
	// OpenQuery opens the named list and returns its handle.
	// A null handle means the host does not know the list.
	OpenQuery(ctx context.Context, name string, pointer Pointer, arguments string) (Pointer, error)
	// FreeQuery releases a handle returned by OpenQuery
	FreeQuery(handle Pointer)
	// AdvanceQuery moves to the next row, returning false when exhausted
	AdvanceQuery(handle Pointer) bool
	// Fields returns the field list of the current row
	// as comma separated "<type><prefix><name>" tokens
	Fields(handle Pointer) string

	Integer(handle Pointer, field string) int
	String(handle Pointer, field string) string
	Pointer(handle Pointer, field string) Pointer
	Time(handle Pointer, field string) time.Time
}
