package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/amithcabraal/qw-chain-20/internal/database"
	"github.com/amithcabraal/qw-chain-20/internal/game"
)

func newSQLStore(t *testing.T, limit int) Store {
	t.Helper()
	db, err := database.OpenMigrated(":memory:")
	if err != nil {
		t.Fatalf("OpenMigrated() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db, limit)
}

func stores(t *testing.T, limit int) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(limit),
		"sqlite": newSQLStore(t, limit),
	}
}

func summary(owner string, i int, at time.Time) Summary {
	return Summary{
		ID:        fmt.Sprintf("%s-%d", owner, i),
		Owner:     owner,
		Timestamp: at,
		StartWord: "happy",
		Score:     i * 10,
		Chain:     []Link{{Word: "happy", Definitions: []string{"pleased"}}, {Word: "glad"}},
		Reason:    string(game.ReasonTimeout),
	}
}

func TestStoreKeepsNewestWithinLimit(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for name, st := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 12; i++ {
				if err := st.Append(ctx, summary("alice", i, base.Add(time.Duration(i)*time.Second))); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}
			if err := st.Append(ctx, summary("bob", 0, base)); err != nil {
				t.Fatalf("Append() error = %v", err)
			}

			got, err := st.List(ctx, "alice")
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != 10 {
				t.Fatalf("List() returned %d, want 10", len(got))
			}
			if got[0].ID != "alice-11" || got[9].ID != "alice-2" {
				t.Errorf("List() order = %s..%s, want alice-11..alice-2", got[0].ID, got[9].ID)
			}
			if len(got[0].Chain) != 2 || got[0].Chain[0].Definitions[0] != "pleased" {
				t.Errorf("chain not round-tripped: %+v", got[0].Chain)
			}
			if !got[0].Timestamp.Equal(base.Add(11 * time.Second)) {
				t.Errorf("Timestamp = %v", got[0].Timestamp)
			}

			bob, err := st.List(ctx, "bob")
			if err != nil || len(bob) != 1 {
				t.Errorf("List(bob) = %v, %v; want 1 summary", bob, err)
			}
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, st := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = st.Append(ctx, summary("alice", 1, time.Now()))
			_ = st.Append(ctx, summary("bob", 1, time.Now()))
			if err := st.Clear(ctx, "alice"); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if got, _ := st.List(ctx, "alice"); len(got) != 0 {
				t.Errorf("List(alice) after Clear = %d entries, want 0", len(got))
			}
			if got, _ := st.List(ctx, "bob"); len(got) != 1 {
				t.Errorf("List(bob) after Clear(alice) = %d entries, want 1", len(got))
			}
		})
	}
}

func TestStoreRejectsMissingOwner(t *testing.T) {
	for name, st := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			if err := st.Append(context.Background(), Summary{ID: "x"}); !errors.Is(err, ErrNoOwner) {
				t.Errorf("Append() error = %v, want ErrNoOwner", err)
			}
		})
	}
}

func TestStoreClaimMergesAndTrims(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for name, st := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = st.Append(ctx, summary("anon", 1, base.Add(1*time.Second)))
			_ = st.Append(ctx, summary("anon", 3, base.Add(3*time.Second)))
			_ = st.Append(ctx, summary("user", 0, base))
			_ = st.Append(ctx, summary("user", 2, base.Add(2*time.Second)))

			if err := st.(Claimer).Claim(ctx, "anon", "user"); err != nil {
				t.Fatalf("Claim() error = %v", err)
			}
			got, _ := st.List(ctx, "user")
			ids := make([]string, len(got))
			for i, s := range got {
				ids[i] = s.ID
			}
			want := []string{"anon-3", "user-2", "anon-1"}
			if fmt.Sprint(ids) != fmt.Sprint(want) {
				t.Errorf("List(user) = %v, want %v", ids, want)
			}
			if left, _ := st.List(ctx, "anon"); len(left) != 0 {
				t.Errorf("List(anon) after Claim = %d entries", len(left))
			}
		})
	}
}

func TestRecorderAppendsSnapshot(t *testing.T) {
	st := NewMemoryStore(0)
	var saved []Summary
	rec := Recorder(st, "anon-1", "daily", func(s Summary) { saved = append(saved, s) })

	rec.Record(game.Snapshot{
		Status:           game.StatusFinished,
		StartWord:        "happy",
		Chain:            []game.WordEntry{{Word: "happy"}, {Word: "glad"}},
		Score:            270,
		MissedWord:       "cheerful",
		MissedDefinition: "Noticeably happy.",
		Reason:           game.ReasonTimeout,
	})

	got, err := st.List(context.Background(), "anon-1")
	if err != nil || len(got) != 1 {
		t.Fatalf("List() = %v, %v; want 1 summary", got, err)
	}
	s := got[0]
	if s.ID == "" || s.StartWord != "happy" || s.Score != 270 || len(s.Chain) != 2 ||
		s.MissedWord != "cheerful" || s.MissedDefinition != "Noticeably happy." ||
		s.Reason != "timeout" || s.Mode != "daily" {
		t.Errorf("summary = %+v", s)
	}
	if len(saved) != 1 || saved[0].ID != s.ID {
		t.Errorf("onSaved called with %+v", saved)
	}
}

