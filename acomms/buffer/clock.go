package buffer

import (
	"sync"
	"time"
)

// Clock abstracts the monotonic wall clock consulted by the priority
// formula in TopValue. Both SubBuffer and DynamicBuffer take a Clock at
// construction time rather than reading a package-level global, so that
// simulated-time tests stay hermetic (see the Open Question in the design
// notes: last_access must still only be mutated by Top, never by
// TopValue, regardless of which Clock is in use).
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
	// WarpFactor returns the scalar multiplier applied to elapsed wall
	// time when computing priority. It is 1 when simulated time is not
	// in effect.
	WarpFactor() float64
}

// SystemClock is the default Clock: real wall-clock time, with an optional
// warp factor that can be toggled to emulate the host's simulated-time
// setting (SetWarp) without touching a process-global.
type SystemClock struct {
	mu   sync.RWMutex
	warp float64
}

// NewSystemClock returns a SystemClock with simulated time disabled.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns time.Now().
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// WarpFactor returns the active warp factor, or 1 if SetWarp has not been
// called (or ClearWarp was called since).
func (c *SystemClock) WarpFactor() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.warp <= 0 {
		return 1
	}
	return c.warp
}

// SetWarp enables simulated time with the given factor.
func (c *SystemClock) SetWarp(factor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warp = factor
}

// ClearWarp disables simulated time, reverting WarpFactor to 1.
func (c *SystemClock) ClearWarp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warp = 0
}

// SimClock is a manually-advanced Clock for deterministic tests that would
// otherwise need to sleep on the real wall clock.
type SimClock struct {
	mu   sync.Mutex
	now  time.Time
	warp float64
}

// NewSimClock returns a SimClock starting at start. A zero start is
// replaced with the Unix epoch so timestamps remain comparable.
func NewSimClock(start time.Time) *SimClock {
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	return &SimClock{now: start}
}

// Now returns the clock's current simulated instant.
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the simulated clock forward by d.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetWarp sets the warp factor applied by WarpFactor.
func (c *SimClock) SetWarp(factor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warp = factor
}

// WarpFactor returns the active warp factor, defaulting to 1.
func (c *SimClock) WarpFactor() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warp <= 0 {
		return 1
	}
	return c.warp
}
