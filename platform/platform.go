// Package platform implements the narrow set of OS capabilities FTQ needs -
// tick clock, calibration, core pinning, real-time scheduling, memory locking
// and descriptive system information. Each target OS provides its own variant
// of the privileged calls; the measurement core never branches on the OS.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/aknopov/ftq/tickcount"
	"github.com/shirou/gopsutil/v4/cpu"
)

const (
	ClockTSC  = "tsc"
	ClockMono = "mono"
)

var (
	ErrUnknownClock = errors.New("unknown clock")
	ErrNotSupported = errors.New("not supported on this platform")
	ErrCore         = errors.New("invalid core index")
)

// Capabilities consumed by the FTQ orchestrator
type Platform interface {
	tickcount.Clock
	// Blocks for calibration period and returns measured ticks per nanosecond
	CalibrateTicksPerNs() (float64, error)
	// Binds calling OS thread to the core; caller must hold runtime.LockOSThread
	PinToCore(core int) error
	// Switches calling OS thread to real-time scheduling
	SetRealtimePriority() error
	CoreCount() int
	// Descriptive lines for report headers
	Info(core int) []string
	// Keeps memory resident; failure is not fatal for callers
	LockMemory(buf []byte) error
}

// Function substitutions for unit tests
var (
	cpuCountsF = cpu.Counts
)

// Host platform of the running process
type Host struct {
	tickcount.Clock
	ref    tickcount.Monotonic
	period time.Duration
	// affinity and scheduler calls are serialized
	lock sync.Mutex
}

// Creates host platform reading ticks from the named clock (see NewClock).
// Calibration sleeps for `period`.
func New(clockName string, period time.Duration) (*Host, error) {
	clock, err := NewClock(clockName)
	if err != nil {
		return nil, err
	}
	return &Host{Clock: clock, period: period}, nil
}

// Returns the named tick clock after verifying that it can be read
func NewClock(name string) (tickcount.Clock, error) {
	mono := tickcount.Monotonic{}
	if err := mono.Probe(); err != nil {
		return nil, err
	}

	switch name {
	case ClockTSC:
		return tickcount.TSC{}, nil
	case ClockMono:
		return mono, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownClock, name)
	}
}

// Underlying tick source (see tickcount.Reader)
func (h *Host) TickClock() tickcount.Clock {
	return h.Clock
}

func (h *Host) CalibrateTicksPerNs() (float64, error) {
	return tickcount.Calibrate(h.Clock, h.ref, h.period)
}

// Number of logical processors
func (h *Host) CoreCount() int {
	cnt, err := cpuCountsF(true)
	if err != nil || cnt < 1 {
		return runtime.NumCPU()
	}
	return cnt
}

func (h *Host) PinToCore(core int) error {
	if core < 0 {
		return fmt.Errorf("%w: %d", ErrCore, core)
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	return pinToCore(core)
}

func (h *Host) SetRealtimePriority() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	return setRealtime()
}

func (h *Host) LockMemory(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return lockMemory(buf)
}

func (h *Host) Info(core int) []string {
	return describe(core)
}
