// Package arena provides append-only, value-semantic storage for
// recursive IR nodes: a Handle is a stable index, copyable and comparable,
// that dereferences through its owning Arena for as long as the arena
// lives. No cycles can form because arenas never allow handles to be
// freed individually, and nothing but another handle may point backward.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// Handle is a typed, stable index into an Arena[T]. The zero Handle is
// never produced by Alloc; it is reserved to mean "absent" where a field
// is optional.
type Handle[T any] struct {
	index uint32
}

// Valid reports whether h was produced by Arena.Alloc.
func (h Handle[T]) Valid() bool { return h.index != 0 }

// Arena owns every T ever allocated into it. Handles handed out by Alloc
// remain valid until the Arena itself is discarded.
type Arena[T any] struct {
	values []T
}

// New returns an empty arena. Index 0 is reserved so the zero Handle can
// mean "absent".
func New[T any]() *Arena[T] {
	var zero T
	return &Arena[T]{values: []T{zero}}
}

// Alloc stores value and returns a stable handle to it.
func (a *Arena[T]) Alloc(value T) Handle[T] {
	idx, err := safecast.Conv[uint32](len(a.values))
	if err != nil {
		panic(fmt.Errorf("arena: overflow: %w", err))
	}
	a.values = append(a.values, value)
	return Handle[T]{index: idx}
}

// Deref returns a pointer to the stored value, valid for the arena's
// lifetime. It panics on an invalid or out-of-range handle — dereferencing
// a handle from a different arena is a programmer error, not a recoverable
// diagnostic.
func (a *Arena[T]) Deref(h Handle[T]) *T {
	if h.index == 0 || int(h.index) >= len(a.values) {
		panic("arena: dereference of invalid handle")
	}
	return &a.values[h.index]
}

// Len reports how many values have been allocated (excluding the reserved
// zero slot).
func (a *Arena[T]) Len() int { return len(a.values) - 1 }
