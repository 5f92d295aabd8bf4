// internal/history/history.go
//
// Finished-round history, kept per owner (signed-in user ID or anonymous ID).
//
// Characteristics:
//   - Summaries are written once, when a round finishes with a non-empty chain.
//   - List returns newest first and never more than the retention limit.
//   - Append evicts the oldest summaries beyond the limit.

package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/game"
)

// DefaultLimit is how many summaries are kept per owner.
const DefaultLimit = 10

// ErrNoOwner is returned when a summary has no owner.
var ErrNoOwner = errors.New("history: missing owner")

// Link is one word of a stored chain.
type Link struct {
	Word        string   `json:"word"`
	Definitions []string `json:"definitions,omitempty"`
}

// Summary is the record of one finished round.
type Summary struct {
	ID               string    `json:"id"`
	Owner            string    `json:"-"`
	Timestamp        time.Time `json:"date"`
	StartWord        string    `json:"startWord"`
	Score            int       `json:"score"`
	Chain            []Link    `json:"chain"`
	MissedWord       string    `json:"missedWord,omitempty"`
	MissedDefinition string    `json:"missedWordDefinition,omitempty"`
	Reason           string    `json:"reason"`
	Mode             string    `json:"mode,omitempty"`
}

// Store persists summaries.
type Store interface {
	// Append stores s for s.Owner and trims that owner's history to the limit.
	Append(ctx context.Context, s Summary) error
	// List returns the owner's summaries, newest first.
	List(ctx context.Context, owner string) ([]Summary, error)
	// Clear removes every summary of the owner.
	Clear(ctx context.Context, owner string) error
}

// Claimer is implemented by stores that can move one owner's history to
// another, used when a guest signs in.
type Claimer interface {
	Claim(ctx context.Context, from, to string) error
}

// FromSnapshot converts a finished round into a Summary with a fresh ID.
func FromSnapshot(owner string, snap game.Snapshot, now time.Time) Summary {
	chain := make([]Link, len(snap.Chain))
	for i, e := range snap.Chain {
		chain[i] = Link{Word: e.Word, Definitions: e.Definitions}
	}
	return Summary{
		ID:               uuid.NewString(),
		Owner:            owner,
		Timestamp:        now.UTC(),
		StartWord:        snap.StartWord,
		Score:            snap.Score,
		Chain:            chain,
		MissedWord:       snap.MissedWord,
		MissedDefinition: snap.MissedDefinition,
		Reason:           string(snap.Reason),
	}
}

// Recorder returns a game.Recorder that appends finished rounds for owner.
// onSaved, when non-nil, runs after a successful append.
func Recorder(st Store, owner, mode string, onSaved func(Summary)) game.Recorder {
	return game.RecorderFunc(func(snap game.Snapshot) {
		s := FromSnapshot(owner, snap, time.Now())
		s.Mode = mode
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Append(ctx, s); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("append history")
			return
		}
		if onSaved != nil {
			onSaved(s)
		}
	})
}
