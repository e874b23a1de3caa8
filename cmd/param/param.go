// Package param parses FTQ command line into run options
package param

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aknopov/ftq"
	"github.com/aknopov/ftq/platform"
)

const (
	DefaultOutName = "ftq"
)

var (
	ErrStdoutThreads = errors.New("stdout output requires single thread")
	ErrQuantumFlags  = errors.New("frequency and interval are mutually exclusive")
	ErrFrequency     = errors.New("frequency should be positive")
	ErrExtraArgs     = errors.New("unexpected arguments")
)

// Parsed command line
type Options struct {
	ftq.Config
	ProgName string
	OutName  string
	Stdout   bool
	Clock    string
	Mode     ftq.TimeMode
}

// Parses commandline; usage is called on malformed flags and on "-h"
func ParseParams(args []string, usage func()) (*Options, error) {
	opts := Options{
		Config:   ftq.DefaultConfig(),
		ProgName: filepath.Base(args[0]),
	}

	flagSet := flag.NewFlagSet(opts.ProgName, flag.ContinueOnError)
	flagSet.Usage = usage

	var freq float64
	var intervalNs int64
	var delayMs int64
	var noPin, rawTicks bool
	flagSet.IntVar(&opts.Threads, "t", opts.Threads, "")
	flagSet.IntVar(&opts.Samples, "n", opts.Samples, "")
	flagSet.Float64Var(&freq, "f", 0, "")
	flagSet.Int64Var(&intervalNs, "i", 0, "")
	flagSet.StringVar(&opts.OutName, "o", DefaultOutName, "")
	flagSet.BoolVar(&opts.Stdout, "s", false, "")
	flagSet.Float64Var(&opts.TicksPerNs, "T", 0, "")
	flagSet.BoolVar(&opts.IgnorePinFailures, "w", false, "")
	flagSet.BoolVar(&opts.Realtime, "r", false, "")
	flagSet.IntVar(&opts.RtFreeCores, "rtfree", opts.RtFreeCores, "")
	flagSet.Int64Var(&delayMs, "d", 0, "")
	flagSet.IntVar(&opts.Warmup, "warmup", opts.Warmup, "")
	flagSet.StringVar(&opts.Clock, "clock", platform.ClockTSC, "")
	flagSet.BoolVar(&rawTicks, "ticks", false, "")
	flagSet.BoolVar(&noPin, "nopin", false, "")

	if err := flagSet.Parse(args[1:]); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", ErrExtraArgs, flagSet.Args())
	}

	visited := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	switch {
	case visited["f"] && visited["i"]:
		return nil, ErrQuantumFlags
	case visited["f"]:
		if !(freq > 0) {
			return nil, fmt.Errorf("%w: %g", ErrFrequency, freq)
		}
		// frequencies above 1 GHz are left to Config.Normalize for clamping
		opts.Quantum = max(time.Duration(float64(time.Second)/freq), 1)
	case visited["i"]:
		opts.Quantum = time.Duration(intervalNs)
	}

	if opts.Stdout && opts.Threads != 1 {
		return nil, fmt.Errorf("%w: %d threads requested", ErrStdoutThreads, opts.Threads)
	}
	if opts.Clock != platform.ClockTSC && opts.Clock != platform.ClockMono {
		return nil, fmt.Errorf("%w: '%s'", platform.ErrUnknownClock, opts.Clock)
	}

	opts.StartDelay = time.Duration(delayMs) * time.Millisecond
	opts.Pin = !noPin
	if rawTicks {
		opts.Mode = ftq.Ticks
	}

	return &opts, nil
}
