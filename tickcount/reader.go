package tickcount

// Implemented by types that carry a tick source, e.g. a platform
type Carrier interface {
	TickClock() Clock
}

// Returns function reading the clock. Known sources are read by direct calls to
// functions without stack checks, so a busy loop around them has no preemption points.
func Reader(clock Clock) func() uint64 {
	if c, ok := clock.(Carrier); ok {
		clock = c.TickClock()
	}

	switch clock.(type) {
	case TSC:
		return TickCount
	case Monotonic:
		return monotonicNow
	default:
		return clock.Now
	}
}
