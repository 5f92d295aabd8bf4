// internal/daily/daily.go
//
// Daily challenge seed selection.
// Every player gets the same starter word on a given UTC date; the index into
// the starter list is HMAC(salt, YYYY-MM-DD) so it cannot be guessed without
// the server salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Mode tags daily rounds in history and sessions.
const Mode = "daily"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Seed picks the day's starter word from starters. It returns "" and -1 when
// the list is empty.
func Seed(date time.Time, salt string, starters []string) (string, int) {
	if len(starters) == 0 {
		return "", -1
	}
	i := WordIndex(date, salt, len(starters))
	return starters[i], i
}
