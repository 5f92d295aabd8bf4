package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/amithcabraal/qw-chain-20/assets"
	"github.com/amithcabraal/qw-chain-20/internal/game"
)

// Static serves lookups from an in-memory thesaurus. Used for offline play
// and tests.
type Static struct {
	entries map[string]game.WordEntry
}

// NewStatic builds a Static lookup; keys are lowercased.
func NewStatic(entries map[string]game.WordEntry) *Static {
	s := &Static{entries: make(map[string]game.WordEntry, len(entries))}
	for w, e := range entries {
		w = strings.ToLower(strings.TrimSpace(w))
		rel := newRelatedSet(w)
		rel.add(e.RelatedWords...)
		s.entries[w] = game.WordEntry{
			Word:         w,
			Definitions:  append([]string(nil), e.Definitions...),
			RelatedWords: rel.list,
		}
	}
	return s
}

// staticEntry is the JSON shape of one thesaurus record.
type staticEntry struct {
	Definitions []string `json:"definitions"`
	Related     []string `json:"related"`
}

// ParseStatic decodes a thesaurus JSON object keyed by word.
func ParseStatic(data []byte) (*Static, error) {
	var raw map[string]staticEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse thesaurus: %w", err)
	}
	entries := make(map[string]game.WordEntry, len(raw))
	for w, e := range raw {
		entries[w] = game.WordEntry{Word: w, Definitions: e.Definitions, RelatedWords: e.Related}
	}
	return NewStatic(entries), nil
}

// LoadStatic parses the embedded thesaurus.
func LoadStatic() (*Static, error) {
	data, err := assets.Thesaurus()
	if err != nil {
		return nil, fmt.Errorf("read thesaurus: %w", err)
	}
	return ParseStatic(data)
}

// Lookup returns the stored entry or ErrNotFound.
func (s *Static) Lookup(ctx context.Context, word string) (game.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return game.WordEntry{}, err
	}
	e, ok := s.entries[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return game.WordEntry{}, ErrNotFound
	}
	return e, nil
}

// Words lists every known word in sorted order.
func (s *Static) Words() []string {
	out := make([]string, 0, len(s.entries))
	for w := range s.entries {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
