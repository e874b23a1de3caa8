package ftq

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aknopov/ftq/platform"
	"github.com/aknopov/ftq/tickcount"
)

// Worker life cycle; states only move forward
type State int32

const (
	Created State = iota
	WaitingForStart
	Warmup
	Recording
	Done
)

var stateNames = map[State]string{
	Created:         "created",
	WaitingForStart: "waiting for start",
	Warmup:          "warm-up",
	Recording:       "recording",
	Done:            "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

const (
	pinWarning = "Warning: not wired to this core; results may be flaky"
)

var (
	ErrPin          = errors.New("failed to pin worker")
	ErrRealtime     = errors.New("failed to set real-time priority")
	ErrCalibrate    = errors.New("bad calibration factor")
	ErrQuantumTicks = errors.New("quantum is shorter than one tick")
	ErrReused       = errors.New("orchestrator has already run")
)

// Tick spans above it could overflow the clock arithmetic
const maxTicks = math.MaxUint64 / 2

type worker struct {
	id     int
	region Region
	state  atomic.Int32
	report WorkerReport
	err    error
}

func (w *worker) setState(s State) {
	w.state.Store(int32(s))
}

// Runs FTQ workers and collects their samples
type Orchestrator struct {
	cfg        Config
	plat       platform.Platform
	warnings   []string
	ticksPerNs float64
	interval   uint64
	delay      uint64
	overhead   uint64
	cores      int
	buf        *Buffer
	workers    []*worker

	ready sync.WaitGroup
	done  sync.WaitGroup
	start atomic.Bool
	abort atomic.Bool
	ran   atomic.Bool
}

// Validates configuration, calibrates the clock and allocates sample storage
func NewOrchestrator(cfg Config, plat platform.Platform) (*Orchestrator, error) {
	warnings, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	ticksPerNs := cfg.TicksPerNs
	if ticksPerNs == 0 {
		if ticksPerNs, err = plat.CalibrateTicksPerNs(); err != nil {
			return nil, err
		}
	}
	if !(ticksPerNs > 0) || math.IsInf(ticksPerNs, 0) {
		return nil, fmt.Errorf("%w: %g", ErrCalibrate, ticksPerNs)
	}

	interval, err := nsToTicks(cfg.Quantum, ticksPerNs)
	if err != nil {
		return nil, err
	}
	if interval == 0 {
		return nil, fmt.Errorf("%w: %v at %g ticks/ns", ErrQuantumTicks, cfg.Quantum, ticksPerNs)
	}
	delay, err := nsToTicks(cfg.StartDelay, ticksPerNs)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:        cfg,
		plat:       plat,
		warnings:   warnings,
		ticksPerNs: ticksPerNs,
		interval:   interval,
		delay:      delay,
		cores:      plat.CoreCount(),
		buf:        NewBuffer(cfg.Threads, cfg.Samples),
	}

	if err := plat.LockMemory(o.buf.bytes()); err != nil {
		o.warnings = append(o.warnings, fmt.Sprintf("Warning: sample buffer is not locked in memory: %v", err))
	}

	o.workers = make([]*worker, cfg.Threads)
	for i := range o.workers {
		o.workers[i] = &worker{id: i, region: o.buf.Region(i), report: WorkerReport{ID: i, Core: i}}
	}

	return o, nil
}

// Configuration after clamping
func (o *Orchestrator) Config() Config {
	return o.cfg
}

func (o *Orchestrator) Warnings() []string {
	return o.warnings
}

// Quantum length in ticks
func (o *Orchestrator) Interval() uint64 {
	return o.interval
}

func (o *Orchestrator) State(id int) State {
	return State(o.workers[id].state.Load())
}

// Runs all workers to completion. The orchestrator can run only once.
func (o *Orchestrator) Run() (*Result, error) {
	if !o.ran.CompareAndSwap(false, true) {
		return nil, ErrReused
	}
	o.overhead = tickcount.Overhead(o.plat)

	if procs := o.cfg.Threads + 1; runtime.GOMAXPROCS(0) < procs {
		defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(procs))
	}
	defer debug.SetGCPercent(debug.SetGCPercent(-1))

	for _, w := range o.workers {
		o.ready.Add(1)
		o.done.Add(1)
		go o.work(w)
	}

	o.ready.Wait()
	for _, w := range o.workers {
		if w.err != nil {
			o.abort.Store(true)
		}
	}
	o.start.Store(true)
	o.done.Wait()

	for _, w := range o.workers {
		if w.err != nil {
			return nil, w.err
		}
	}

	return o.collect(), nil
}

// Worker goroutine keeps its OS thread locked until exit,
// so a pinned or real-time thread is never reused by the runtime.
func (o *Orchestrator) work(w *worker) {
	runtime.LockOSThread()
	defer o.done.Done()
	defer w.setState(Done)

	w.err = o.setup(w)
	w.setState(WaitingForStart)
	o.ready.Done()

	for !o.start.Load() {
	}
	if o.abort.Load() {
		return
	}

	if o.delay > 0 {
		spinDelay(o.plat, o.delay)
	}

	sampler := NewSampler(o.plat, o.interval)
	w.setState(Warmup)
	sampler.Warmup(o.cfg.warmupCount())
	w.setState(Recording)
	w.report.Total = sampler.Record(w.region)
}

func (o *Orchestrator) setup(w *worker) error {
	if o.cfg.Pin {
		if err := o.plat.PinToCore(w.id); err != nil {
			if !o.cfg.IgnorePinFailures {
				return fmt.Errorf("%w %d to core %d: %w", ErrPin, w.id, w.id, err)
			}
			w.report.Warnings = append(w.report.Warnings, pinWarning)
		} else {
			w.report.Pinned = true
		}
	}

	if o.cfg.Realtime && w.id+o.cfg.RtFreeCores < o.cores {
		if err := o.plat.SetRealtimePriority(); err != nil {
			return fmt.Errorf("%w for worker %d: %w", ErrRealtime, w.id, err)
		}
		w.report.Realtime = true
	}

	return nil
}

func (o *Orchestrator) collect() *Result {
	res := &Result{
		Config:        o.cfg,
		TicksPerNs:    o.ticksPerNs,
		TickInterval:  o.interval,
		ClockOverhead: o.overhead,
		Buffer:        o.buf,
		Workers:       make([]WorkerReport, len(o.workers)),
		Warnings:      o.warnings,
	}

	var maxCount uint64
	for i, w := range o.workers {
		w.report.Info = o.plat.Info(w.report.Core)
		res.Workers[i] = w.report
		res.TotalCount += w.report.Total
		maxCount = max(maxCount, w.region.MaxCount())
	}
	res.MaxWork = uint64(o.cfg.Threads) * uint64(o.cfg.Samples) * maxCount

	return res
}

// Busy-waits for `ticks` without leaving the CPU
func spinDelay(clock tickcount.Clock, ticks uint64) {
	now := tickcount.Reader(clock)
	end := now() + ticks
	for now() < end {
	}
}

// Runs FTQ benchmark with the configuration on the platform
func Run(cfg Config, plat platform.Platform) (*Result, error) {
	o, err := NewOrchestrator(cfg, plat)
	if err != nil {
		return nil, err
	}
	return o.Run()
}

// Converts nanoseconds to ticks
func nsToTicks(d time.Duration, ticksPerNs float64) (uint64, error) {
	ticks := float64(d.Nanoseconds()) * ticksPerNs
	if ticks > maxTicks {
		return 0, fmt.Errorf("%w: %v is too many ticks at %g ticks/ns", ErrCalibrate, d, ticksPerNs)
	}
	return uint64(ticks), nil
}
