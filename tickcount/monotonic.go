package tickcount

import (
	"errors"
	_ "unsafe" // go:linkname
)

var (
	ErrClock = errors.New("clock read failed")
)

// Runtime monotonic clock (vDSO clock_gettime on Linux)
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Nanoseconds of the monotonic clock
type Monotonic struct{}

//go:nosplit
func (Monotonic) Now() uint64 {
	return monotonicNow()
}

//go:nosplit
func monotonicNow() uint64 {
	return uint64(nanotime())
}
