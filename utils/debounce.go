package utils

import (
	"sync"
	"time"
)

// Debouncer delays delivery of a changing value until the configured delay
// has elapsed with no further change. Superseded pending values are replaced,
// never queued: the consumer only ever sees the last write. It throttles
// search-query key changes so each keystroke does not trigger a catalog read.
type Debouncer[T any] struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	stopped bool
	out     chan T
}

// NewDebouncer creates a debouncer emitting on C() after delay.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Set schedules v for emission after the delay, replacing any value that is
// still pending. Calling Set again before the delay elapses restarts it.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.emit)
}

func (d *Debouncer[T]) emit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// An unconsumed earlier emission is stale; drop it so the buffered
	// channel always holds the latest value.
	select {
	case <-d.out:
	default:
	}
	d.out <- d.pending
}

// C delivers debounced values. The channel is buffered with capacity one and
// is never closed; stop reading after calling Stop.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending emission. No value is delivered after Stop
// returns. Safe to call more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
