package ticker

import (
	"sync"
	"time"
)

// Ticker invokes a callback once per interval between Start and Stop. It
// carries no game semantics: timing policy lives here, state mutation lives
// with whoever owns the callback. Missed intervals are never replayed;
// stopping and restarting only gates whether callbacks fire.
type Ticker struct {
	interval time.Duration
	fn       func()
	mu       sync.Mutex
	stop     chan struct{}
}

func New(interval time.Duration, fn func()) *Ticker {
	return &Ticker{
		interval: interval,
		fn:       fn,
	}
}

// Start launches the ticking goroutine. A no-op if already running.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.fn()
			}
		}
	}(t.stop)
}

// Stop halts ticking. A no-op if not running.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

// Running reports whether the ticker is currently started.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
