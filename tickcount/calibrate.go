package tickcount

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Calibration period used by FTQ runs
	DefaultCalibration = 2 * time.Second
)

var (
	ErrCalibration = errors.New("clock calibration failed")
)

// Function substitutions for unit tests
var (
	sleepF = time.Sleep
)

// Measures ticks of `clock` per nanosecond of `ref` clock by sleeping for `period`.
// The reference clock should count nanoseconds (see Monotonic).
func Calibrate(clock, ref Clock, period time.Duration) (float64, error) {
	timeStart := ref.Now()
	tickStart := clock.Now()
	sleepF(period)
	tickEnd := clock.Now()
	timeEnd := ref.Now()

	if timeEnd <= timeStart {
		return 0, fmt.Errorf("%w: reference clock did not advance", ErrCalibration)
	}
	if tickEnd <= tickStart {
		return 0, fmt.Errorf("%w: tick clock did not advance", ErrCalibration)
	}

	return float64(tickEnd-tickStart) / float64(timeEnd-timeStart), nil
}
