package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerStopsWhenCallbackReturnsFalse(t *testing.T) {
	var n atomic.Int32
	tk := Start(time.Millisecond, func() bool { return n.Add(1) < 3 })
	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop")
	}
	if got := n.Load(); got != 3 {
		t.Errorf("callback ran %d times, want 3", got)
	}
	tk.Stop()
}

func TestTickerStopIsIdempotent(t *testing.T) {
	tk := Start(time.Hour, func() bool { return true })
	tk.Stop()
	tk.Stop()
	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not exit after Stop")
	}

	var nilTicker *Ticker
	nilTicker.Stop()
}
