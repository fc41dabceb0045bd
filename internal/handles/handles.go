//go:build !ios && !android && (amd64 || arm64)

// Package handles maps uintptr identities to Go values.
//
// Native callbacks cannot carry Go pointers, so every value the host hands
// back to us (a control surface instance, a registration) is stored here
// under an integer id that is safe to keep in native memory. Ids are never
// reused within a table, so a stale id looks up nothing instead of a newer
// value.
package handles

import (
	"slices"
	"sync"
)

// Table is a thread-safe id -> value table. The zero value is not usable;
// call NewTable.
type Table[T any] struct {
	mu      sync.RWMutex
	entries map[uintptr]T
	nextID  uintptr
}

// NewTable creates an empty table. Ids start at 1, so 0 never denotes an
// entry.
func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[uintptr]T), nextID: 1}
}

// Register stores v and returns its id.
func (t *Table[T]) Register(v T) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.entries[id] = v
	return id
}

// Lookup returns the value stored under id.
func (t *Table[T]) Lookup(id uintptr) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[id]
	return v, ok
}

// Unregister removes id and returns the value it held. Removing an unknown
// id is a no-op.
func (t *Table[T]) Unregister(id uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	return v, ok
}

// Count returns the number of stored values.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// IDs returns every stored id, most recently registered first.
func (t *Table[T]) IDs() []uintptr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]uintptr, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.Reverse(ids)
	return ids
}
