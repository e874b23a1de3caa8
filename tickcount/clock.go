// Package tickcount provides tick sources - the raw CPU cycle counter and a monotonic
// nanosecond clock - together with read overhead estimate and tick to nanosecond calibration.
package tickcount

import "math"

const (
	ovhdCnt = 10000
)

// Source of opaque, monotonically non-decreasing ticks.
// Implementations must be cheap enough to be read millions of times per second.
type Clock interface {
	Now() uint64
}

// Adapter for plain functions
type ClockFunc func() uint64

func (f ClockFunc) Now() uint64 {
	return f()
}

// CPU cycle counter
type TSC struct{}

//go:nosplit
func (TSC) Now() uint64 {
	return TickCount()
}

// Minimal number of ticks between two consecutive clock reads.
// See https://community.intel.com/t5/Intel-ISA-Extensions/Measure-the-execution-time-using-RDTSC/td-p/1365538
func Overhead(clock Clock) uint64 {
	ovhd := uint64(math.MaxUint64)

	for i := 0; i < ovhdCnt; i++ {
		cnt0 := clock.Now()
		delta := clock.Now() - cnt0
		if delta < ovhd {
			ovhd = delta
		}
	}

	return ovhd
}

// Overhead of reading the cycle counter
func TickCountOverhead() uint64 {
	return Overhead(TSC{})
}
