package testutil

import "sync"

// ManualClock is a host wall clock that only moves when told to.
//
// It stands in for time.Now in hosts that poll the engine, so tests can
// decide exactly how much time elapses between ticks.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

// NewManualClock creates a clock reading start seconds since the epoch.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading in seconds.
func (c *ManualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d seconds and returns the new reading.
func (c *ManualClock) Advance(d float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
	return c.now
}

// Set jumps the clock to t, which may be in the past.
func (c *ManualClock) Set(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
