// internal/game/types.go
//
// Core type definitions for the word-chain engine.
// Defines:
//   - WordEntry: a confirmed word with its definitions and related words.
//   - Status / Reason: coarse round state and terminal reason.
//   - Snapshot: a copy of the round state handed to callers.
//   - Lookup / Recorder: collaborators the engine consumes.

package game

import "context"

const (
	// RoundSeconds is the countdown length for every hidden word.
	RoundSeconds = 30
	// ScorePerSecond is multiplied by the remaining seconds on a correct guess.
	ScorePerSecond = 10
)

// WordEntry is one link of the chain. Produced by a Lookup; treat as immutable.
type WordEntry struct {
	Word         string   // Confirmed word (lowercase).
	Definitions  []string // Ordered definitions.
	RelatedWords []string // Candidate set for the next hidden word.
}

// Status represents where a round currently sits in its lifecycle.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Reason explains why a round finished.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonTimeout          Reason = "timeout"
	ReasonWrongGuess       Reason = "wrong_guess"
	ReasonNoCandidatesLeft Reason = "no_candidates_left"
)

// Snapshot is a point-in-time copy of the engine state. Chain is a fresh slice
// so callers may hold on to it.
type Snapshot struct {
	Round            uint64 // Round token; bumped on every start/restart.
	Status           Status
	StartWord        string
	Chain            []WordEntry
	Target           string // Hidden word; empty unless playing.
	Remaining        int
	Score            int
	Pending          bool // A guess lookup is in flight.
	MissedWord       string
	MissedDefinition string
	Reason           Reason
}

// Current returns the most recent chain entry, or false for an empty chain.
func (s Snapshot) Current() (WordEntry, bool) {
	if len(s.Chain) == 0 {
		return WordEntry{}, false
	}
	return s.Chain[len(s.Chain)-1], true
}

// Lookup resolves a word into its definitions and related words.
// Implementations may block on I/O and must honour ctx.
type Lookup interface {
	Lookup(ctx context.Context, word string) (WordEntry, error)
}

// Recorder receives the final snapshot of every finished round with a
// non-empty chain, exactly once per round.
type Recorder interface {
	Record(s Snapshot)
}

// RecorderFunc adapts a plain function to Recorder.
type RecorderFunc func(s Snapshot)

// Record calls f(s).
func (f RecorderFunc) Record(s Snapshot) { f(s) }
