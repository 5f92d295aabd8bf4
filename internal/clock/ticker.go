// internal/clock/ticker.go
//
// Per-session countdown driver. The game engine owns no timer; a Ticker calls
// its callback once per interval until the callback asks to stop or Stop is
// called.

package clock

import (
	"sync"
	"time"
)

// Ticker runs a callback on a fixed interval in its own goroutine.
type Ticker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start launches a ticker. fn returning false stops it.
func Start(interval time.Duration, fn func() bool) *Ticker {
	t := &Ticker{stop: make(chan struct{}), done: make(chan struct{})}
	go t.run(interval, fn)
	return t
}

func (t *Ticker) run(interval time.Duration, fn func() bool) {
	defer close(t.done)
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			if !fn() {
				return
			}
		}
	}
}

// Stop ends the ticker. It is safe to call more than once and from inside the
// callback; it does not wait for the goroutine to exit.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
}

// Done is closed once the ticker goroutine has exited.
func (t *Ticker) Done() <-chan struct{} { return t.done }
