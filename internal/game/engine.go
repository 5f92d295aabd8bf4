// internal/game/engine.go
//
// Core engine for a single word-chain session.
// Responsibilities:
//   - Start rounds from a seed word (given or picked by the Starter hook).
//   - Count down the per-word timer on Tick and end the round at zero.
//   - Validate guesses against the hidden word and grow the chain.
//   - Score correct guesses by the seconds left (×ScorePerSecond).
//   - Track state transitions: idle → loading → playing → finished.
//
// Notes:
//   - Lookups run without holding the engine lock. A round token guards every
//     lookup so that a restart discards results meant for the previous round.
//   - Observer and Recorder callbacks run after the lock is released.
//   - The engine owns no timer; something outside calls Tick once per second.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultMissedLookupTimeout = 5 * time.Second

// Options configures an Engine. The zero value is usable but Start then needs
// an explicit seed word.
type Options struct {
	Selector Selector
	Recorder Recorder
	// Starter picks a seed word when Start is called with an empty one.
	Starter func() string
	// Observer sees a snapshot after every state change.
	Observer func(Snapshot)
	// Strict ends the round on the first wrong guess (ReasonWrongGuess).
	Strict bool
	// MissedLookupTimeout bounds the definition lookup made after a timeout.
	MissedLookupTimeout time.Duration
}

// round holds everything that belongs to one round. Restarting replaces it.
type round struct {
	status           Status
	startWord        string
	chain            []WordEntry
	target           string
	remaining        int
	score            int
	pending          bool
	missedWord       string
	missedDefinition string
	reason           Reason
	recorded         bool
}

// Engine is the sole owner of a session's round state.
// All exported methods are safe for concurrent use.
type Engine struct {
	ID     string
	lookup Lookup
	opts   Options

	mu      sync.Mutex
	token   uint64
	r       round
	effects []func()

	bg sync.WaitGroup
}

// New constructs an idle engine backed by lookup.
func New(lookup Lookup, opts Options) *Engine {
	if opts.MissedLookupTimeout <= 0 {
		opts.MissedLookupTimeout = defaultMissedLookupTimeout
	}
	return &Engine{
		ID:     randomID(),
		lookup: lookup,
		opts:   opts,
		r:      round{status: StatusIdle},
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start begins a new round from seed, abandoning whatever was in progress.
// An empty seed asks Options.Starter for one.
//
// On lookup failure the engine returns to the state it had before the call and
// the error satisfies errors.Is(err, ErrLookupFailed). If another Start wins
// the race while the lookup is in flight, ErrSuperseded is returned.
func (e *Engine) Start(ctx context.Context, seed string) (Snapshot, error) {
	seed = normalize(seed)
	if seed == "" && e.opts.Starter != nil {
		seed = normalize(e.opts.Starter())
	}
	if seed == "" {
		return e.Snapshot(), ErrNoSeed
	}

	e.mu.Lock()
	prev := e.r
	e.token++
	token := e.token
	e.r = round{status: StatusLoading, startWord: seed}
	e.queueNotify()
	e.unlockAndFlush()

	entry, err := e.lookup.Lookup(ctx, seed)

	e.mu.Lock()
	defer e.unlockAndFlush()
	if token != e.token {
		return e.snapshotLocked(), ErrSuperseded
	}
	if err != nil {
		// Any guess lookup of the previous round was invalidated by the token bump.
		prev.pending = false
		e.r = prev
		e.queueNotify()
		log.Warn().Err(err).Str("game", e.ID).Str("seed", seed).Msg("start lookup failed")
		return e.snapshotLocked(), &LookupError{Word: seed, Err: err}
	}

	entry = normalizeEntry(entry, seed)
	e.r.chain = []WordEntry{entry}
	next, ok := e.opts.Selector.Select(entry.RelatedWords, []string{seed})
	if !ok {
		e.finishLocked(ReasonNoCandidatesLeft, "")
	} else {
		e.r.status = StatusPlaying
		e.r.target = next
		e.r.remaining = RoundSeconds
		e.r.score = 0
		log.Debug().Str("game", e.ID).Str("seed", seed).Msg("round started")
	}
	e.queueNotify()
	return e.snapshotLocked(), nil
}

// Restart is Start under the name callers use after a round is over.
// It is always permitted and never records the abandoned round.
func (e *Engine) Restart(ctx context.Context, seed string) (Snapshot, error) {
	return e.Start(ctx, seed)
}

// Tick advances the countdown by one second. It is a no-op unless the round is
// playing. The tick that brings the timer to zero finishes the round with
// ReasonTimeout on that same call, even while a guess is being looked up; that
// guess then fails with ErrSuperseded.
func (e *Engine) Tick() Snapshot {
	e.mu.Lock()
	defer e.unlockAndFlush()
	if e.r.status != StatusPlaying {
		return e.snapshotLocked()
	}
	if e.r.remaining > 0 {
		e.r.remaining--
	}
	if e.r.remaining == 0 {
		e.finishLocked(ReasonTimeout, e.r.target)
	}
	e.queueNotify()
	return e.snapshotLocked()
}

// SubmitGuess checks rawGuess against the hidden word.
//
//   - Wrong word: ErrNotMatching, state untouched (Strict mode ends the round).
//   - Right word: the word is looked up, appended to the chain and the next
//     hidden word is chosen. Points are the seconds left when the guess arrived
//     times ScorePerSecond.
//   - Lookup failure: LookupError, state untouched, the player may guess again.
//   - Another guess or a Start still in flight: ErrEngineBusy.
func (e *Engine) SubmitGuess(ctx context.Context, rawGuess string) (Snapshot, error) {
	guess := normalize(rawGuess)

	e.mu.Lock()
	if e.r.status == StatusLoading {
		defer e.unlockAndFlush()
		return e.snapshotLocked(), ErrEngineBusy
	}
	if e.r.status != StatusPlaying {
		defer e.unlockAndFlush()
		return e.snapshotLocked(), ErrNotPlaying
	}
	if e.r.pending {
		defer e.unlockAndFlush()
		return e.snapshotLocked(), ErrEngineBusy
	}
	if guess != e.r.target {
		defer e.unlockAndFlush()
		if e.opts.Strict {
			e.finishLocked(ReasonWrongGuess, e.r.target)
			e.queueNotify()
		}
		return e.snapshotLocked(), ErrNotMatching
	}
	token := e.token
	earned := e.r.remaining * ScorePerSecond
	e.r.pending = true
	e.queueNotify()
	e.unlockAndFlush()

	entry, err := e.lookup.Lookup(ctx, guess)

	e.mu.Lock()
	defer e.unlockAndFlush()
	if token != e.token || e.r.status != StatusPlaying {
		return e.snapshotLocked(), ErrSuperseded
	}
	e.r.pending = false
	if err != nil {
		e.queueNotify()
		log.Warn().Err(err).Str("game", e.ID).Str("word", guess).Msg("guess lookup failed")
		return e.snapshotLocked(), &LookupError{Word: guess, Err: err}
	}

	entry = normalizeEntry(entry, guess)
	e.r.chain = append(e.r.chain, entry)

	next, ok := e.opts.Selector.Select(entry.RelatedWords, chainWords(e.r.chain))
	if !ok {
		e.finishLocked(ReasonNoCandidatesLeft, "")
	} else {
		e.r.score += earned
		e.r.target = next
		e.r.remaining = RoundSeconds
		log.Debug().Str("game", e.ID).Int("chain", len(e.r.chain)).Int("score", e.r.score).Msg("guess accepted")
	}
	e.queueNotify()
	return e.snapshotLocked(), nil
}

// Wait blocks until background work (missed-word definition lookups) is done.
func (e *Engine) Wait() { e.bg.Wait() }

// finishLocked moves the round to finished and arranges the single history
// record. A timeout first resolves the missed word's definition in the
// background and records once that settles.
func (e *Engine) finishLocked(reason Reason, missed string) {
	e.r.status = StatusFinished
	e.r.reason = reason
	e.r.missedWord = missed
	e.r.target = ""
	e.r.pending = false
	log.Debug().Str("game", e.ID).Str("reason", string(reason)).Int("score", e.r.score).Msg("round finished")

	if e.r.recorded {
		return
	}
	e.r.recorded = true
	if reason == ReasonTimeout && missed != "" {
		snap := e.snapshotLocked()
		e.bg.Add(1)
		go e.resolveMissed(e.token, snap)
		return
	}
	e.queueRecord(e.snapshotLocked())
}

// resolveMissed looks up the definition of the word the player missed.
// Failure leaves the definition empty.
func (e *Engine) resolveMissed(token uint64, snap Snapshot) {
	defer e.bg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), e.opts.MissedLookupTimeout)
	defer cancel()
	def := ""
	if entry, err := e.lookup.Lookup(ctx, snap.MissedWord); err != nil {
		log.Debug().Err(err).Str("game", e.ID).Str("word", snap.MissedWord).Msg("missed word lookup failed")
	} else if len(entry.Definitions) > 0 {
		def = entry.Definitions[0]
	}

	e.mu.Lock()
	defer e.unlockAndFlush()
	snap.MissedDefinition = def
	if token == e.token && e.r.status == StatusFinished {
		e.r.missedDefinition = def
		e.queueNotify()
	}
	e.queueRecord(snap)
}

func (e *Engine) queueNotify() {
	if e.opts.Observer == nil {
		return
	}
	snap := e.snapshotLocked()
	obs := e.opts.Observer
	e.effects = append(e.effects, func() { obs(snap) })
}

func (e *Engine) queueRecord(snap Snapshot) {
	if e.opts.Recorder == nil || len(snap.Chain) == 0 {
		return
	}
	rec := e.opts.Recorder
	e.effects = append(e.effects, func() { rec.Record(snap) })
}

// unlockAndFlush releases the lock and runs queued callbacks in order.
func (e *Engine) unlockAndFlush() {
	effects := e.effects
	e.effects = nil
	e.mu.Unlock()
	for _, f := range effects {
		f()
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Round:            e.token,
		Status:           e.r.status,
		StartWord:        e.r.startWord,
		Chain:            append([]WordEntry(nil), e.r.chain...),
		Target:           e.r.target,
		Remaining:        e.r.remaining,
		Score:            e.r.score,
		Pending:          e.r.pending,
		MissedWord:       e.r.missedWord,
		MissedDefinition: e.r.missedDefinition,
		Reason:           e.r.reason,
	}
}

// normalize trims and lowercases a word.
func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// normalizeEntry pins the entry to the word that was asked for and copies its
// slices so later changes by the lookup cannot leak into the chain.
func normalizeEntry(entry WordEntry, word string) WordEntry {
	return WordEntry{
		Word:         word,
		Definitions:  append([]string(nil), entry.Definitions...),
		RelatedWords: append([]string(nil), entry.RelatedWords...),
	}
}

// chainWords lists every chain word, used as the no-repeat set.
func chainWords(chain []WordEntry) []string {
	out := make([]string, len(chain))
	for i, w := range chain {
		out[i] = w.Word
	}
	return out
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
