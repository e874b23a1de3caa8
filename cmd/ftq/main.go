package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aknopov/fancylogger"
	"github.com/aknopov/ftq"
	"github.com/aknopov/ftq/cmd/param"
	"github.com/aknopov/ftq/platform"
	"github.com/aknopov/ftq/tickcount"
)

var (
	logger = fancylogger.NewLogger(os.Stderr, fancylogger.LiteFg)
)

// Function substitutions for unit tests
var (
	newPlatformF = func(clock string) (platform.Platform, error) {
		return platform.New(clock, tickcount.DefaultCalibration)
	}
)

func main() {
	opts, err := param.ParseParams(os.Args, func() { usage(os.Stderr) })
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
			usage(os.Stderr)
		}
		os.Exit(1)
	}

	if err := ensureNoPreempt(); err != nil {
		logger.Info().Err(err).Msg("Warning: asynchronous preemption stays enabled")
	}

	assertNoErr(run(opts, os.Stdout))
}

func run(opts *param.Options, stdout io.Writer) error {
	plat, err := newPlatformF(opts.Clock)
	if err != nil {
		return err
	}

	logger.Info().Msgf("%s: %d thread(s), %d samples, quantum %v, clock %s",
		ftq.AssumeOnErr(os.Executable, opts.ProgName), opts.Threads, opts.Samples, opts.Quantum, opts.Clock)
	if opts.TicksPerNs == 0 {
		logger.Info().Dur("period", tickcount.DefaultCalibration).Msg("Calibrating clock")
	}

	res, err := ftq.Run(opts.Config, plat)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Info().Msg(w)
	}
	for _, wr := range res.Workers {
		for _, w := range wr.Warnings {
			logger.Info().Int("worker", wr.ID).Msg(w)
		}
	}
	logger.Info().Msgf("Total count %d of %d possible, fraction %g", res.TotalCount, res.MaxWork, res.Utilization())

	if opts.Stdout {
		return res.WriteStream(stdout, opts.OutName+".dat", opts.Mode)
	}

	names, err := res.WriteFiles(opts.OutName, opts.Mode)
	if err != nil {
		return err
	}
	logger.Info().Msgf("Samples written to %s", strings.Join(names, ", "))
	return nil
}

func assertNoErr(err error) {
	if err != nil {
		logger.Error().Err(err).Msg("FTQ failed")
		os.Exit(1)
	}
}

//nolint:errcheck
func usage(sink io.Writer) {
	fmt.Fprintln(sink, `Fixed Time Quantum OS noise benchmark
Usage: ftq [-t threads] [-n samples] [-f freq | -i interval] [-o outname | -s] [options]
  -t - number of threads, each running on its own core (default 1)
  -n - samples per thread (default 10000, maximum 2000000)
  -f - quantum frequency in Hz
  -i - quantum length in ns (default 1000000)
  -o - output name prefix; files are <outname>_<thread>.dat (default "ftq")
  -s - write samples to stdout (single thread only)
  -T - ticks per ns; skips clock calibration
  -w - ignore failures to pin threads to cores
  -r - real-time priority for threads leaving enough cores to OS
  -rtfree - number of cores left to OS with "-r" (default 2)
  -d - start delay in ms
  -warmup - number of unrecorded quanta before sampling (default 1000)
  -clock - tick source "tsc" (CPU cycle counter) or "mono" (monotonic ns clock)
  -ticks - report time in ticks instead of ns
  -nopin - do not pin threads to cores`)
}
