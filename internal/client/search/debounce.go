package search

import (
	"sync"
	"time"
)

// DefaultDebounceInterval is the quiet period before a query is sent.
const DefaultDebounceInterval = 500 * time.Millisecond

// Stopper is the part of *time.Timer the debouncer uses.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production value;
// tests pass a fake clock.
type AfterFunc func(d time.Duration, f func()) Stopper

func realAfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// Debouncer runs only the last function triggered within an interval
// (trailing edge). A superseded callback never runs, even if its timer had
// already fired.
type Debouncer struct {
	interval time.Duration
	after    AfterFunc

	mu     sync.Mutex
	timer  Stopper
	gen    uint64
	closed bool
}

func NewDebouncer(interval time.Duration, after AfterFunc) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{interval: interval, after: after}
}

// Trigger cancels any pending call and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen

	d.timer = d.after(d.interval, func() {
		d.mu.Lock()
		current := !d.closed && gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Close cancels the pending call; later triggers are ignored.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	d.closed = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
