// Package ftq implements the Fixed Time Quantum benchmark - measures operating system noise
// by counting how much fixed-cost work completes in each of many equal time quanta.
package ftq

import (
	"errors"
	"fmt"
	"time"
)

const (
	MaxSamples         = 2000000
	DefaultSamples     = 10000
	DefaultQuantum     = time.Millisecond
	MinQuantum         = time.Microsecond
	MaxQuantum         = time.Second
	DefaultWarmup      = 1000
	DefaultRtFreeCores = 2
)

var (
	ErrThreads     = errors.New("number of threads should be positive")
	ErrSamples     = errors.New("number of samples should be positive")
	ErrQuantum     = errors.New("quantum should be positive")
	ErrTicksPerNs  = errors.New("ticks per nanosecond should be positive")
	ErrStartDelay  = errors.New("start delay should not be negative")
	ErrRtFreeCores = errors.New("number of cores left to OS should not be negative")
	ErrWarmup      = errors.New("warm-up count should not be negative")
)

// Substituted in unit tests
var maxSamples = MaxSamples

// Run configuration. It is not changed once sampling starts.
type Config struct {
	Threads int
	// Samples per thread
	Samples int
	Quantum time.Duration
	// Calibration factor; zero requests measuring it
	TicksPerNs        float64
	Pin               bool
	IgnorePinFailures bool
	Realtime          bool
	// Real-time priority is given only to workers leaving that many cores free
	RtFreeCores int
	StartDelay  time.Duration
	// Unrecorded quanta before sampling (capped by Samples)
	Warmup int
}

func DefaultConfig() Config {
	return Config{
		Threads:     1,
		Samples:     DefaultSamples,
		Quantum:     DefaultQuantum,
		Pin:         true,
		RtFreeCores: DefaultRtFreeCores,
		Warmup:      DefaultWarmup,
	}
}

// Validates configuration and clamps values outside supported ranges.
// Returns warnings for every clamped value.
func (c *Config) Normalize() ([]string, error) {
	switch {
	case c.Threads < 1:
		return nil, fmt.Errorf("%w: %d", ErrThreads, c.Threads)
	case c.Samples < 1:
		return nil, fmt.Errorf("%w: %d", ErrSamples, c.Samples)
	case c.Quantum <= 0:
		return nil, fmt.Errorf("%w: %v", ErrQuantum, c.Quantum)
	case c.TicksPerNs < 0:
		return nil, fmt.Errorf("%w: %g", ErrTicksPerNs, c.TicksPerNs)
	case c.StartDelay < 0:
		return nil, fmt.Errorf("%w: %v", ErrStartDelay, c.StartDelay)
	case c.RtFreeCores < 0:
		return nil, fmt.Errorf("%w: %d", ErrRtFreeCores, c.RtFreeCores)
	case c.Warmup < 0:
		return nil, fmt.Errorf("%w: %d", ErrWarmup, c.Warmup)
	}

	warnings := make([]string, 0)
	if c.Samples > maxSamples {
		warnings = append(warnings, fmt.Sprintf("Warning: sample count %d exceeds maximum, set to %d", c.Samples, maxSamples))
		c.Samples = maxSamples
	}
	if c.Quantum < MinQuantum {
		warnings = append(warnings, fmt.Sprintf("Warning: quantum %v is too short, set to %v", c.Quantum, MinQuantum))
		c.Quantum = MinQuantum
	} else if c.Quantum > MaxQuantum {
		warnings = append(warnings, fmt.Sprintf("Warning: quantum %v is too long, set to %v", c.Quantum, MaxQuantum))
		c.Quantum = MaxQuantum
	}

	return warnings, nil
}

// Quanta per second
func (c *Config) Frequency() float64 {
	return float64(time.Second) / float64(c.Quantum)
}

func (c *Config) warmupCount() int {
	return min(c.Warmup, c.Samples)
}
