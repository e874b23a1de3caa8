//go:build !amd64

package tickcount

// No portable cycle counter - monotonic nanoseconds stand for ticks
//
//go:nosplit
func TickCount() uint64 {
	return monotonicNow()
}
