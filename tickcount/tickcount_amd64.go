//go:build amd64

package tickcount

// Reads CPU time stamp counter (RDTSC)
func TickCountA() uint64

//go:nosplit
func TickCount() uint64 {
	return TickCountA()
}
