// Package clock abstracts the wall clock behind an interface so that
// everything date-dependent — "today", the 30-day stats window, the
// current-hour highlight — can be tested against a fixed instant.
//
// The services take a Clock, not time.Now. Production code injects Real;
// tests inject a Fixed clock set to a known moment.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source used by the schedule services and consoles.
type Clock interface {
	Now() time.Time
}

// Real is the production clock backed by time.Now.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed is a controllable clock for tests. It is safe for concurrent use.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a clock pinned to the given instant.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now returns the pinned instant.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set repins the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d and returns the updated instant.
func (f *Fixed) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}
