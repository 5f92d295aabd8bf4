// internal/lookup/http.go
//
// Word lookup backed by a dictionaryapi.dev-compatible HTTP endpoint.
// Responsibilities:
//   - GET {BaseURL}/{word} and decode the entries array.
//   - Collect definitions (ordered, de-duplicated) and related words from both
//     meaning-level and definition-level synonym lists.
//   - Retry transport errors, 429 and 5xx with exponential backoff.
//
// Notes:
//   - 404 is permanent and surfaces as ErrNotFound.
//   - Related words are kept only when they are playable single words.

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// DefaultBaseURL is the public free dictionary API.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrNotFound is returned when the dictionary has no entry for a word.
var ErrNotFound = errors.New("lookup: word not found")

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("lookup: unexpected status %d", e.Code) }

// HTTP implements game.Lookup against a remote dictionary.
type HTTP struct {
	BaseURL string
	Client  *http.Client
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// Retries is the number of extra attempts after the first one.
	Retries uint
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
}

// NewHTTP returns a client with sensible defaults for empty values.
func NewHTTP(baseURL string, timeout time.Duration, retries uint) *HTTP {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTP{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		Client:          &http.Client{},
		Timeout:         timeout,
		Retries:         retries,
		InitialInterval: 200 * time.Millisecond,
	}
}

// apiEntry mirrors the parts of the dictionary response we use.
type apiEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Synonyms   []string `json:"synonyms"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
	} `json:"meanings"`
}

// Lookup fetches word, retrying transient failures.
func (h *HTTP) Lookup(ctx context.Context, word string) (game.WordEntry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return game.WordEntry{}, ErrNotFound
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = h.InitialInterval
	attempt := 0
	return backoff.Retry(ctx, func() (game.WordEntry, error) {
		attempt++
		entry, err := h.fetch(ctx, word)
		if err != nil {
			log.Debug().Err(err).Str("word", word).Int("attempt", attempt).Msg("dictionary fetch")
		}
		return entry, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(h.Retries+1))
}

// fetch performs one attempt. Errors that must not be retried are wrapped with
// backoff.Permanent.
func (h *HTTP) fetch(ctx context.Context, word string) (game.WordEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return game.WordEntry{}, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return game.WordEntry{}, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return game.WordEntry{}, backoff.Permanent(ErrNotFound)
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
		return game.WordEntry{}, &StatusError{Code: res.StatusCode}
	case res.StatusCode != http.StatusOK:
		return game.WordEntry{}, backoff.Permanent(&StatusError{Code: res.StatusCode})
	}

	var entries []apiEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return game.WordEntry{}, backoff.Permanent(fmt.Errorf("decode %q: %w", word, err))
	}
	if len(entries) == 0 {
		return game.WordEntry{}, backoff.Permanent(ErrNotFound)
	}
	return toEntry(word, entries), nil
}

// toEntry flattens dictionary entries into a WordEntry.
func toEntry(word string, entries []apiEntry) game.WordEntry {
	out := game.WordEntry{Word: word}
	seenDef := make(map[string]struct{})
	rel := newRelatedSet(word)
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				def := strings.TrimSpace(d.Definition)
				if def != "" {
					if _, ok := seenDef[def]; !ok {
						seenDef[def] = struct{}{}
						out.Definitions = append(out.Definitions, def)
					}
				}
				rel.add(d.Synonyms...)
			}
			rel.add(m.Synonyms...)
		}
	}
	out.RelatedWords = rel.list
	return out
}

// relatedSet accumulates playable related words in first-seen order.
type relatedSet struct {
	self string
	seen map[string]struct{}
	list []string
}

func newRelatedSet(self string) *relatedSet {
	return &relatedSet{self: self, seen: make(map[string]struct{})}
}

func (s *relatedSet) add(ws ...string) {
	for _, w := range ws {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == s.self || !words.Playable(w) {
			continue
		}
		if _, ok := s.seen[w]; ok {
			continue
		}
		s.seen[w] = struct{}{}
		s.list = append(s.list, w)
	}
}
