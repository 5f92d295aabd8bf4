package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

func TestStaticLookup(t *testing.T) {
	s := NewStatic(map[string]game.WordEntry{
		"Happy": {Definitions: []string{"pleased"}, RelatedWords: []string{"Glad", "happy", "two words", "glad"}},
	})

	entry, err := s.Lookup(context.Background(), "HAPPY")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry.Word != "happy" || len(entry.RelatedWords) != 1 || entry.RelatedWords[0] != "glad" {
		t.Errorf("entry = %+v, want happy -> [glad]", entry)
	}

	if _, err := s.Lookup(context.Background(), "sad"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(sad) error = %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Lookup(ctx, "happy"); !errors.Is(err, context.Canceled) {
		t.Errorf("Lookup() with cancelled ctx error = %v, want context.Canceled", err)
	}
}

func TestParseStaticRejectsBadJSON(t *testing.T) {
	if _, err := ParseStatic([]byte(`[`)); err == nil {
		t.Error("ParseStatic() error = nil, want error")
	}
}

// The embedded thesaurus must cover every starter word so offline rounds can
// begin from any of them.
func TestEmbeddedThesaurusCoversStarters(t *testing.T) {
	s, err := LoadStatic()
	if err != nil {
		t.Fatalf("LoadStatic() error = %v", err)
	}
	if err := words.Init(""); err != nil {
		t.Fatalf("words.Init() error = %v", err)
	}
	for _, w := range words.Starters() {
		entry, err := s.Lookup(context.Background(), w)
		if err != nil {
			t.Errorf("starter %q missing from thesaurus: %v", w, err)
			continue
		}
		if len(entry.RelatedWords) == 0 {
			t.Errorf("starter %q has no related words", w)
		}
	}
}
