package searchui

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer uses.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a timer calling f after d. time.AfterFunc satisfies it
// once wrapped; tests substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs at most one pending function; scheduling a new one cancels
// the previous.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	pending Timer
	gen     uint64
	closed  bool

	// settled is closed once the latest scheduled call has run or been
	// dropped; finish closes it at most once.
	settled chan struct{}
	finish  func()
}

// NewDebouncer returns a debouncer with the given delay. after may be nil.
func NewDebouncer(delay time.Duration, after AfterFunc) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{delay: delay, after: after}
}

// Schedule cancels the pending call and arranges for f to run after the
// delay.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.stopLocked()
	d.gen++
	gen := d.gen

	settled := make(chan struct{})
	finish := sync.OnceFunc(func() { close(settled) })
	d.settled, d.finish = settled, finish

	d.pending = d.after(d.delay, func() {
		defer finish()

		d.mu.Lock()
		// A timer that already fired cannot be stopped; the generation
		// tells a superseded callback apart.
		current := gen == d.gen && !d.closed
		if current {
			d.pending = nil
		}
		d.mu.Unlock()
		if current {
			f()
		}
	})
}

// Wait blocks until the latest scheduled call has either run to completion
// or been cancelled.
func (d *Debouncer) Wait() {
	d.mu.Lock()
	settled := d.settled
	d.mu.Unlock()

	if settled != nil {
		<-settled
	}
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
	return d.pending != nil
}

// Close cancels the pending call and rejects further scheduling.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	d.closed = true
}

func (d *Debouncer) stopLocked() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
		d.finish()
	}
}
