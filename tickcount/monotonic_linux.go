//go:build linux

package tickcount

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Function substitutions for unit tests
var (
	clockGettimeF = unix.ClockGettime
)

// Verifies that the kernel monotonic clock can be read
func (Monotonic) Probe() error {
	var ts unix.Timespec
	if err := clockGettimeF(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return fmt.Errorf("%w: %v", ErrClock, err)
	}
	return nil
}
