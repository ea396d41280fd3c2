// Package resource provides a generic handle table for host-owned resources.
// Callers hold only the numeric identifier; the table owns the entry and its
// cleanup.
package resource

import (
	"errors"
	"math"
	"sync"
)

// ErrExhausted is returned by Add when every identifier is in use.
var ErrExhausted = errors.New("resource: identifier space exhausted")

// Table is a thread-safe handle table for resources of a specific type T.
// Identifiers start at 1 (0 is reserved as invalid) and may be reused after
// removal.
type Table[T any] struct {
	mu      sync.RWMutex
	entries map[uint32]T
	nextID  uint32
	dispose func(T)
}

// NewTable creates a table for a specific resource type. dispose, if
// non-nil, runs for every entry deleted through Remove.
func NewTable[T any](dispose func(T)) *Table[T] {
	return &Table[T]{
		entries: make(map[uint32]T),
		dispose: dispose,
	}
}

// Add stores a resource and returns its identifier. ErrExhausted is the
// only failure mode and requires every identifier to be live at once.
func (t *Table[T]) Add(v T) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if uint64(len(t.entries)) >= math.MaxUint32 {
		return 0, ErrExhausted
	}
	// Identifiers increment monotonically and wrap around zero; slots still
	// live after a wrap are skipped.
	for {
		t.nextID++
		if t.nextID == 0 {
			t.nextID = 1
		}
		if _, live := t.entries[t.nextID]; !live {
			break
		}
	}
	t.entries[t.nextID] = v
	return t.nextID, nil
}

// Get retrieves a resource by its identifier.
func (t *Table[T]) Get(id uint32) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[id]
	return v, ok
}

// Remove deletes a resource, running the dispose hook if one was set, and
// reports whether the identifier was live.
func (t *Table[T]) Remove(id uint32) bool {
	t.mu.Lock()
	v, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	if ok && t.dispose != nil {
		t.dispose(v)
	}
	return ok
}

// Len reports the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Range iterates over the entries in the table. It calls f for each
// identifier and resource; if f returns false, the iteration stops.
func (t *Table[T]) Range(f func(id uint32, resource T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for id, v := range t.entries {
		if !f(id, v) {
			break
		}
	}
}
