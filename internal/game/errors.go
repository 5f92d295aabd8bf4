package game

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupFailed is reported when the word lookup collaborator fails.
	ErrLookupFailed = errors.New("lookup failed")
	// ErrNotMatching is returned when a guess differs from the hidden word.
	ErrNotMatching = errors.New("not the word")
	// ErrEngineBusy is returned while a previous guess is still being looked up.
	ErrEngineBusy = errors.New("engine busy")
	// ErrNotPlaying is returned when a guess arrives outside an active round.
	ErrNotPlaying = errors.New("round not playing")
	// ErrSuperseded is returned when a lookup result was discarded because the
	// round was restarted or ended while it was in flight.
	ErrSuperseded = errors.New("round superseded")
	// ErrNoSeed is returned by Start when no seed word is available.
	ErrNoSeed = errors.New("no seed word")
)

// LookupError carries the word that failed to resolve.
type LookupError struct {
	Word string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Word, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLookupFailed) true for every LookupError.
func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }
