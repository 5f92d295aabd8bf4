// internal/words/words.go
//
// Starter word management for new rounds.
//
// Responsibilities:
//   - Load seed words from a configured file or fall back to the embedded list.
//   - Hand out a random starter for rounds started without a seed.
//
// Initialization behavior (Init):
//   1. If path is non-empty, load one word per line from that file.
//   2. Otherwise use the embedded assets/starters.txt.
//
// Constraints:
//   • Words must be alphabetic (a–z) and contain at least one vowel.
//   • Lists are normalized to lowercase and de-duplicated.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/amithcabraal/qw-chain-20/assets"
)

// fallbackStarter is used when no list has been loaded.
const fallbackStarter = "happy"

var (
	initOnce   sync.Once
	starters   []string
	initialErr error
)

// Init loads the starter list exactly once.
// Returns an error if the list ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path != "" {
			list, err = readWordFile(path)
		} else {
			list, err = assets.StarterList()
		}
		if err != nil {
			initialErr = err
			return
		}
		starters = normalize(list)
		if len(starters) == 0 {
			initialErr = errors.New("words: starter list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalize lowercases, filters unplayable words and drops duplicates.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if !Playable(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Playable reports whether w can be used as a hidden word: lowercase a–z only
// with at least one vowel to reveal.
func Playable(w string) bool {
	return w != "" && isAlpha(w) && VowelCount(w) > 0
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomStarter returns a cryptographically random starter word.
// If the list is not loaded yet or empty, falls back to "happy".
func RandomStarter() string {
	if len(starters) == 0 {
		return fallbackStarter
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(starters))))
	return starters[nBig.Int64()]
}

// Starters returns the loaded starter list.
func Starters() []string { return starters }

// Stats returns the number of loaded starter words.
func Stats() int { return len(starters) }
