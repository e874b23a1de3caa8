package mocker

import "sync/atomic"

// Deterministic tick source. Every read returns current value and then advances it by `step`.
// With zero step time moves only by Advance - handy for "one work unit per tick" fakes.
// Safe for concurrent use.
type Clock struct {
	ticks atomic.Uint64
	step  uint64
}

func NewClock(start, step uint64) *Clock {
	c := &Clock{step: step}
	c.ticks.Store(start)
	return c
}

func (c *Clock) Now() uint64 {
	return c.ticks.Add(c.step) - c.step
}

func (c *Clock) Advance(n uint64) {
	c.ticks.Add(n)
}

// Current value without advancing
func (c *Clock) Peek() uint64 {
	return c.ticks.Load()
}
