package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string]()

	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	_ = s.Save(ctx, "a", "one")
	_ = s.Save(ctx, "a", "two")
	got, err := s.Get(ctx, "a")
	if err != nil || got != "two" {
		t.Errorf("Get() = %q, %v; want two", got, err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	_ = s.Delete(ctx, "a")
	_ = s.Delete(ctx, "a")
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v", err)
	}
}

func TestMemorySweepEvictsIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newMemory[int](func() time.Time { return now })

	_ = m.Save(ctx, "old", 1)
	_ = m.Save(ctx, "touched", 2)
	now = now.Add(20 * time.Minute)
	_ = m.Save(ctx, "new", 3)
	if _, err := m.Get(ctx, "touched"); err != nil {
		t.Fatal(err)
	}
	now = now.Add(time.Minute)

	evicted := m.Sweep(ctx, 10*time.Minute)
	if len(evicted) != 1 || evicted[0] != 1 {
		t.Errorf("Sweep() = %v, want [1]", evicted)
	}
	if m.Len() != 2 {
		t.Errorf("Len() after sweep = %d, want 2", m.Len())
	}
}
