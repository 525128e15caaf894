package ticker

import (
	"sync/atomic"
	"testing"
	"time"

	"CourtsideApi/internal/assert"
)

func TestTickerFiresWhileStarted(t *testing.T) {
	var count atomic.Int64
	tk := New(10*time.Millisecond, func() { count.Add(1) })

	tk.Start()
	assert.Equal(t, tk.Running(), true)
	time.Sleep(55 * time.Millisecond)
	tk.Stop()
	assert.Equal(t, tk.Running(), false)

	got := count.Load()
	if got < 3 || got > 7 {
		t.Errorf("got %d ticks; want roughly 5", got)
	}

	// no further ticks after stop
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count.Load(), got)
}

func TestTickerStartIdempotent(t *testing.T) {
	var count atomic.Int64
	tk := New(10*time.Millisecond, func() { count.Add(1) })

	tk.Start()
	tk.Start()
	time.Sleep(35 * time.Millisecond)
	tk.Stop()

	// a double start must not double the tick rate
	if got := count.Load(); got > 5 {
		t.Errorf("got %d ticks; want at most 5", got)
	}
}

func TestTickerStopIdempotent(t *testing.T) {
	tk := New(10*time.Millisecond, func() {})
	tk.Stop()
	tk.Start()
	tk.Stop()
	tk.Stop()
	assert.Equal(t, tk.Running(), false)
}

func TestTickerRestart(t *testing.T) {
	var count atomic.Int64
	tk := New(10*time.Millisecond, func() { count.Add(1) })

	tk.Start()
	time.Sleep(25 * time.Millisecond)
	tk.Stop()
	paused := count.Load()

	// missed intervals are not replayed on restart
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, count.Load(), paused)

	tk.Start()
	time.Sleep(25 * time.Millisecond)
	tk.Stop()

	if got := count.Load(); got <= paused {
		t.Errorf("got %d ticks after restart; want more than %d", got, paused)
	}
}
