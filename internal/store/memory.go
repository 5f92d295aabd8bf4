// internal/store/memory.go
//
// In-memory registry of live sessions.
// Used by the HTTP layer to find the session behind a game ID.
//
// Characteristics:
//   - Values are keyed by ID in a map; the type is chosen by the caller.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Every Save and Get refreshes the entry's last-seen time; Sweep evicts
//     entries idle for longer than a cutoff.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for live sessions.
type Store[V any] interface {
	// Save adds or replaces the value under id.
	Save(ctx context.Context, id string, v V) error

	// Get retrieves the value under id, or ErrNotFound.
	Get(ctx context.Context, id string) (V, error)

	// Delete forgets id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep evicts every entry not touched since now-idle and returns the
	// evicted values.
	Sweep(ctx context.Context, idle time.Duration) []V

	// Len reports how many entries are held.
	Len() int
}

type entry[V any] struct {
	v    V
	seen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory[V any] struct {
	mu    sync.RWMutex         // guards items
	items map[string]*entry[V] // keyed by session ID
	now   func() time.Time     // clock, swappable in tests
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[V any]() Store[V] {
	return newMemory[V](time.Now)
}

func newMemory[V any](now func() time.Time) *memory[V] {
	return &memory[V]{items: make(map[string]*entry[V]), now: now}
}

// Save adds or updates the value in the map.
func (m *memory[V]) Save(ctx context.Context, id string, v V) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = &entry[V]{v: v, seen: m.now()}
	return nil
}

// Get looks up a value by ID and marks it as seen.
// The write lock is taken because the last-seen time changes.
func (m *memory[V]) Get(ctx context.Context, id string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.items[id]; ok {
		e.seen = m.now()
		return e.v, nil
	}
	var zero V
	return zero, ErrNotFound
}

func (m *memory[V]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memory[V]) Sweep(ctx context.Context, idle time.Duration) []V {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []V
	for id, e := range m.items {
		if e.seen.Before(cutoff) {
			out = append(out, e.v)
			delete(m.items, id)
		}
	}
	return out
}

func (m *memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
