package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the quiet period used when none is configured.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs fire once a burst of Trigger calls has been quiet for the
// configured duration.
type Debouncer struct {
	wait time.Duration
	fire func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer returns a debouncer calling fire. A zero wait uses
// DefaultDebounceDuration.
func NewDebouncer(wait time.Duration, fire func()) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounceDuration
	}
	return &Debouncer{wait: wait, fire: fire}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// a timer that fired while being replaced must not run
		current := gen == d.gen && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			d.fire()
		}
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any scheduled call and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration { return d.wait }
