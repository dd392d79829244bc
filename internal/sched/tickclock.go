// internal/sched/tickclock.go

package sched

import "sync/atomic"

// TickClock is the virtual processor clock. It only moves when the
// scheduler advances it by the length of a dispatched slice.
type TickClock struct {
	count atomic.Int64
}

// NewTickClock returns a clock at tick 0.
func NewTickClock() *TickClock {
	return &TickClock{}
}

// Advance moves the clock forward by n ticks and returns the new time.
func (c *TickClock) Advance(n int64) int64 {
	return c.count.Add(n)
}

// Count returns the current tick.
func (c *TickClock) Count() int64 {
	return c.count.Load()
}
