// internal/history/memory.go
//
// In-memory implementation of the history Store.
// Used for tests and when HISTORY_BACKEND=memory. State is lost on restart.

package history

import (
	"context"
	"sort"
	"sync"
)

// memory keeps per-owner summaries newest first.
type memory struct {
	mu      sync.RWMutex         // guards byOwner
	limit   int                  // retention per owner
	byOwner map[string][]Summary // newest first
}

// NewMemoryStore constructs an in-memory Store keeping limit summaries per
// owner (DefaultLimit when limit <= 0).
func NewMemoryStore(limit int) Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &memory{limit: limit, byOwner: make(map[string][]Summary)}
}

// Append prepends s and drops anything beyond the limit.
func (m *memory) Append(ctx context.Context, s Summary) error {
	if s.Owner == "" {
		return ErrNoOwner
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append([]Summary{s}, m.byOwner[s.Owner]...)
	if len(list) > m.limit {
		list = list[:m.limit]
	}
	m.byOwner[s.Owner] = list
	return nil
}

// List returns a copy of the owner's summaries.
func (m *memory) List(ctx context.Context, owner string) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Summary{}, m.byOwner[owner]...), nil
}

// Clear forgets the owner's summaries.
func (m *memory) Clear(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byOwner, owner)
	return nil
}

// Claim moves from's summaries onto to, keeping newest first within the limit.
func (m *memory) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	moved := m.byOwner[from]
	if len(moved) == 0 {
		return nil
	}
	delete(m.byOwner, from)
	merged := make([]Summary, 0, len(moved)+len(m.byOwner[to]))
	for _, s := range moved {
		s.Owner = to
		merged = append(merged, s)
	}
	merged = append(merged, m.byOwner[to]...)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Timestamp.After(merged[j].Timestamp) })
	if len(merged) > m.limit {
		merged = merged[:m.limit]
	}
	m.byOwner[to] = merged
	return nil
}
