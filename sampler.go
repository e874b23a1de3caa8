package ftq

import "github.com/aknopov/ftq/tickcount"

const (
	// Work grain
	iterCount = 32
)

// Fixed-cost work unit - increases accumulator by exactly one
//
//go:noinline
//go:nosplit
func workUnit(acc *uint64) {
	for k := 0; k < iterCount; k++ {
		*acc++
	}
	for k := 0; k < iterCount-1; k++ {
		*acc--
	}
}

// Substituted in unit tests
var workUnitF = workUnit

// Busy-works through consecutive quanta of `interval` ticks
type Sampler struct {
	now      func() uint64
	interval uint64
}

func NewSampler(clock tickcount.Clock, interval uint64) *Sampler {
	return &Sampler{now: tickcount.Reader(clock), interval: interval}
}

// Runs `n` quanta without recording them
func (s *Sampler) Warmup(n int) {
	s.run(nil, n)
}

// Fills the region with one sample per quantum; returns total work count
func (s *Sampler) Record(region Region) uint64 {
	return s.run(region, len(region))
}

// Quantum ends are rolled by the interval and never re-based on the clock,
// so time spent outside the work loop is charged to the next quantum.
func (s *Sampler) run(region Region, n int) uint64 {
	var total, count uint64

	tickend := s.now() + s.interval
	for i := 0; i < n; i++ {
		count = 0
		ticklast := s.now()
		for now := ticklast; now < tickend; now = s.now() {
			workUnitF(&count)
		}

		if region != nil {
			region[i] = Sample{Timestamp: ticklast, Count: count}
		}
		total += count
		tickend += s.interval
	}

	return total
}
