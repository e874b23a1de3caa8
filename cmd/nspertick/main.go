// Measures duration of a clock tick in nanoseconds
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aknopov/fancylogger"
	"github.com/aknopov/ftq/platform"
)

const (
	defaultPeriod = 30 * time.Second
)

var (
	logger = fancylogger.NewLogger(os.Stderr, fancylogger.LiteFg)
)

// Function substitutions for unit tests
var (
	newPlatformF = func(clock string, period time.Duration) (platform.Platform, error) {
		return platform.New(clock, period)
	}
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Calibration failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flagSet := flag.NewFlagSet(filepath.Base(args[0]), flag.ContinueOnError)
	period := flagSet.Duration("p", defaultPeriod, "measurement period")
	clock := flagSet.String("clock", platform.ClockTSC, `tick source "tsc" or "mono"`)
	if err := flagSet.Parse(args[1:]); err != nil {
		return err
	}
	if *period <= 0 {
		return fmt.Errorf("period should be positive: %v", *period)
	}

	plat, err := newPlatformF(*clock, *period)
	if err != nil {
		return err
	}

	logger.Info().Str("clock", *clock).Dur("period", *period).Msg("Measuring")
	ticksPerNs, err := plat.CalibrateTicksPerNs()
	if err != nil {
		return err
	}

	nsPerTick := 1 / ticksPerNs
	logger.Info().Msgf("time %v; %.0f ticks; nsperticks %g", *period, float64(period.Nanoseconds())*ticksPerNs, nsPerTick)
	_, err = fmt.Fprintf(stdout, "nsperticks = %f\n", nsPerTick)
	return err
}
