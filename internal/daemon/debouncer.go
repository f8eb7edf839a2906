package daemon

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces bursts of change notifications into single build
// triggers: a build fires once the quiet window elapses without further
// changes, or when the max delay since the first change expires.
type Debouncer struct {
	quietWindow time.Duration
	maxDelay    time.Duration
	trigger     func()

	mu      sync.Mutex
	pending bool
	firstAt time.Time
	lastAt  time.Time
	wake    chan struct{}
}

// NewDebouncer creates a debouncer that calls trigger when a burst settles.
func NewDebouncer(quietWindow, maxDelay time.Duration, trigger func()) *Debouncer {
	if quietWindow <= 0 {
		quietWindow = 2 * time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 10 * quietWindow
	}
	return &Debouncer{
		quietWindow: quietWindow,
		maxDelay:    maxDelay,
		trigger:     trigger,
		wake:        make(chan struct{}, 1),
	}
}

// Notify records one change event.
func (d *Debouncer) Notify() {
	d.mu.Lock()
	now := time.Now()
	if !d.pending {
		d.pending = true
		d.firstAt = now
	}
	d.lastAt = now
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run drives the debouncer until the context is cancelled.
func (d *Debouncer) Run(ctx context.Context) {
	ticker := time.NewTicker(d.quietWindow / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.wake:
		case <-ticker.C:
		}
		if d.takeIfDue(time.Now()) {
			d.trigger()
		}
	}
}

// takeIfDue clears and reports a pending trigger whose quiet window or max
// delay has expired.
func (d *Debouncer) takeIfDue(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending {
		return false
	}
	quietOver := now.Sub(d.lastAt) >= d.quietWindow
	delayOver := now.Sub(d.firstAt) >= d.maxDelay
	if !quietOver && !delayOver {
		return false
	}
	d.pending = false
	return true
}
