package search

import (
	"sync"
	"time"
)

// Debouncer collapses repeated triggers per key into a single call fired after the key is quiet
// for the delay. Each trigger resets the key's timer.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer makes a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

// Trigger schedules fn for the key, replacing any call still waiting for that key.
// Returns false if the debouncer was stopped.
func (d *Debouncer) Trigger(key string, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// a newer trigger may have replaced this timer after it fired
		if d.timers[key] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = timer
	return true
}

// pending returns the number of keys waiting to fire
func (d *Debouncer) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop cancels all waiting calls and returns their keys, later triggers are ignored
func (d *Debouncer) Stop() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	canceled := make([]string, 0, len(d.timers))
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
		canceled = append(canceled, key)
	}
	return canceled
}
