package daily

import (
	"context"
	"testing"
	"time"

	"github.com/amithcabraal/qw-chain-20/internal/database"
)

func TestWordIndexIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 3, 4, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC)
	if a, b := WordIndex(morning, "salt", 97), WordIndex(night, "salt", 97); a != b {
		t.Errorf("same day gave %d and %d", a, b)
	}
	for d := 0; d < 60; d++ {
		i := WordIndex(morning.AddDate(0, 0, d), "salt", 8)
		if i < 0 || i >= 8 {
			t.Fatalf("WordIndex out of range: %d", i)
		}
	}
	if got := WordIndex(morning, "salt", 0); got != 0 {
		t.Errorf("WordIndex(n=0) = %d, want 0", got)
	}
}

func TestWordIndexDependsOnSalt(t *testing.T) {
	day := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	differs := false
	for _, salt := range []string{"b", "c", "d", "e", "f"} {
		if WordIndex(day, salt, 1<<20) != WordIndex(day, "a", 1<<20) {
			differs = true
		}
	}
	if !differs {
		t.Error("index ignored the salt")
	}
}

func TestSeed(t *testing.T) {
	day := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	if w, i := Seed(day, "s", nil); w != "" || i != -1 {
		t.Errorf("Seed(empty) = %q, %d", w, i)
	}
	starters := []string{"happy", "brave", "quick"}
	w, i := Seed(day, "s", starters)
	if starters[i] != w {
		t.Errorf("Seed() = %q at %d, list has %q", w, i, starters[i])
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("east", 10*3600)
	at := time.Date(2026, 3, 5, 5, 0, 0, 0, loc) // 2026-03-04 19:00 UTC
	if got := DateKey(at); got != "2026-03-04" {
		t.Errorf("DateKey() = %q, want 2026-03-04", got)
	}
}

func TestStoreResultsAndLeaderboard(t *testing.T) {
	db, err := database.OpenMigrated(":memory:")
	if err != nil {
		t.Fatalf("OpenMigrated() error = %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO users(id, username, password_hash, created_at) VALUES ('u1', 'alice', 'x', '2026-01-01')`); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	st := NewStore(db)
	date := "2026-03-04"

	played, err := st.AlreadyPlayed(ctx, "u1", date)
	if err != nil || played {
		t.Fatalf("AlreadyPlayed() = %v, %v; want false", played, err)
	}

	results := []Result{
		{Owner: "u1", Date: date, StartWord: "happy", Score: 200, ChainLength: 3},
		{Owner: "anon-a", Date: date, StartWord: "happy", Score: 200, ChainLength: 4},
		{Owner: "anon-b", Date: date, StartWord: "happy", Score: 50, ChainLength: 2},
		{Owner: "anon-c", Date: "2026-03-03", StartWord: "brave", Score: 999, ChainLength: 9},
	}
	for _, r := range results {
		if ok, err := st.InsertResult(ctx, r); err != nil || !ok {
			t.Fatalf("InsertResult(%s) = %v, %v", r.Owner, ok, err)
		}
	}
	if ok, err := st.InsertResult(ctx, Result{Owner: "u1", Date: date, Score: 900, ChainLength: 1}); err != nil || ok {
		t.Errorf("second InsertResult() = %v, %v; want ignored", ok, err)
	}

	played, err = st.AlreadyPlayed(ctx, "u1", date)
	if err != nil || !played {
		t.Errorf("AlreadyPlayed() = %v, %v; want true", played, err)
	}

	lb, err := st.Leaderboard(ctx, date, 10)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	want := []LBRow{
		{Owner: "anon-a", Score: 200, ChainLength: 4},
		{Owner: "u1", Name: "alice", Score: 200, ChainLength: 3},
		{Owner: "anon-b", Score: 50, ChainLength: 2},
	}
	if len(lb) != len(want) {
		t.Fatalf("Leaderboard() = %+v, want %+v", lb, want)
	}
	for i := range want {
		if lb[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, lb[i], want[i])
		}
	}

	top, _ := st.Leaderboard(ctx, date, 1)
	if len(top) != 1 {
		t.Errorf("Leaderboard(limit 1) returned %d rows", len(top))
	}
}
