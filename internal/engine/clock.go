package engine

import "math"

// Clock is a monotonic logical clock for event ordering.
//
// Every event pushed to the log carries a strictly increasing sequence
// number from this clock, so hosts can detect evictions between drains.
type Clock struct {
	seq int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from start.
func NewClockAt(start int64) *Clock {
	return &Clock{seq: start}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq
}

// stepEpsilon absorbs float error when dividing elapsed time by the step
// size, so that 0.3s at 0.1s/step is three steps rather than two.
const stepEpsilon = 1e-9

// SimClock converts absolute host timestamps into whole fixed steps.
//
// The first observed timestamp only establishes the baseline. After that,
// elapsed time is clamped to [0, maxCatchUp], added to the carried
// remainder, and divided into whole steps of the current rate. The
// fractional part carries to the next call.
type SimClock struct {
	started    bool
	last       float64
	carry      float64
	maxCatchUp float64
}

// NewSimClock returns a clock with no baseline.
func NewSimClock(maxCatchUp float64) SimClock {
	return SimClock{maxCatchUp: maxCatchUp}
}

// Advance records now and returns how many steps of size rate have elapsed.
// Non-finite timestamps are ignored. A timestamp earlier than the baseline
// counts as zero elapsed time and does not move the baseline back.
func (c *SimClock) Advance(now, rate float64) int {
	if math.IsNaN(now) || math.IsInf(now, 0) {
		return 0
	}
	if !c.started {
		c.started = true
		c.last = now
		c.carry = 0
		return 0
	}

	elapsed := now - c.last
	if elapsed <= 0 {
		return 0
	}
	c.last = now
	if elapsed > c.maxCatchUp {
		elapsed = c.maxCatchUp
	}

	total := c.carry + elapsed
	if total > c.maxCatchUp {
		total = c.maxCatchUp
	}
	steps := math.Floor(total/rate + stepEpsilon)
	c.carry = math.Max(total-steps*rate, 0)
	return int(steps)
}

// Started reports whether a baseline has been observed.
func (c *SimClock) Started() bool { return c.started }

// Last returns the most recent timestamp observed.
func (c *SimClock) Last() float64 { return c.last }

// Carry returns the elapsed time not yet integrated.
func (c *SimClock) Carry() float64 { return c.carry }

// restore sets the baseline from persisted values.
func (c *SimClock) restore(started bool, last, carry float64) {
	if math.IsNaN(last) || math.IsInf(last, 0) {
		started, last = false, 0
	}
	if !(carry >= 0) || math.IsInf(carry, 0) || carry > c.maxCatchUp {
		carry = 0
	}
	c.started = started
	c.last = last
	c.carry = carry
}
