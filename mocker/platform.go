package mocker

import (
	"fmt"
	"sync"
)

// Fake platform for FTQ runs - deterministic clock and scripted failures.
type Platform struct {
	*Clock

	TicksPerNs   float64
	CalibrateErr error
	PinErr       error
	RealtimeErr  error
	LockErr      error
	Cores        int
	// Called on every clock read when set
	OnNow func()

	lock         sync.Mutex
	pinned       []int
	rtCalls      int
	calibrations int
}

func NewPlatform(clock *Clock, cores int) *Platform {
	return &Platform{Clock: clock, TicksPerNs: 1.0, Cores: cores}
}

func (p *Platform) Now() uint64 {
	if p.OnNow != nil {
		p.OnNow()
	}
	return p.Clock.Now()
}

func (p *Platform) CalibrateTicksPerNs() (float64, error) {
	p.lock.Lock()
	p.calibrations++
	p.lock.Unlock()
	return p.TicksPerNs, p.CalibrateErr
}

func (p *Platform) PinToCore(core int) error {
	if p.PinErr != nil {
		return p.PinErr
	}
	p.lock.Lock()
	p.pinned = append(p.pinned, core)
	p.lock.Unlock()
	return nil
}

func (p *Platform) SetRealtimePriority() error {
	if p.RealtimeErr != nil {
		return p.RealtimeErr
	}
	p.lock.Lock()
	p.rtCalls++
	p.lock.Unlock()
	return nil
}

func (p *Platform) CoreCount() int {
	return p.Cores
}

func (p *Platform) Info(core int) []string {
	return []string{fmt.Sprintf("fake processor %d", core)}
}

func (p *Platform) LockMemory(buf []byte) error {
	return p.LockErr
}

// Cores successfully pinned so far (in call order)
func (p *Platform) PinnedCores() []int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]int(nil), p.pinned...)
}

func (p *Platform) RealtimeCalls() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.rtCalls
}

func (p *Platform) Calibrations() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.calibrations
}
