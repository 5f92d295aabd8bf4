package game

import (
	"crypto/rand"
	"math/big"
)

// IndexFunc returns a value in [0, n). n is always > 0.
type IndexFunc func(n int) int

// Selector picks the next hidden word from a candidate set.
// The zero value uses crypto/rand.
type Selector struct {
	Intn IndexFunc
}

// NewSelector returns a Selector drawing indices from intn.
func NewSelector(intn IndexFunc) Selector { return Selector{Intn: intn} }

// Select returns a candidate that is not equal to any used word once both are
// trimmed and lowercased. Duplicate candidates (ignoring case) count once. The
// boolean is false when nothing is left to pick. Inputs are not modified.
func (s Selector) Select(candidates, used []string) (string, bool) {
	seen := make(map[string]struct{}, len(used)+len(candidates))
	for _, w := range used {
		seen[normalize(w)] = struct{}{}
	}
	available := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := normalize(c)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		available = append(available, key)
	}
	if len(available) == 0 {
		return "", false
	}
	intn := s.Intn
	if intn == nil {
		intn = cryptoIntn
	}
	return available[intn(len(available))], true
}

// cryptoIntn draws a uniform index with crypto/rand.
func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
