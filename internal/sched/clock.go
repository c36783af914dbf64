// internal/sched/clock.go

package sched

// Clock counts simulated ticks. It never blocks: the engine advances it once
// at the end of every Tick.
type Clock struct {
	now int
}

// Now returns the current tick.
func (c *Clock) Now() int { return c.now }

// Advance moves the clock forward by one tick and returns the new value.
func (c *Clock) Advance() int {
	c.now++
	return c.now
}
