package ftq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Unit of normalized sample time
type TimeMode int

const (
	Nanoseconds TimeMode = iota
	Ticks
)

var (
	ErrStreamWorkers = errors.New("single stream output requires exactly one worker")
	ErrWorker        = errors.New("no such worker")
)

// Name of the output file of worker `idx`
func FileName(outname string, idx int) string {
	return fmt.Sprintf("%s_%d.dat", outname, idx)
}

// Writes report of the only worker. `name` is the file name suggested in the header.
func (r *Result) WriteStream(sink io.Writer, name string, mode TimeMode) error {
	if len(r.Workers) != 1 {
		return fmt.Errorf("%w: have %d", ErrStreamWorkers, len(r.Workers))
	}
	return r.WriteReport(sink, 0, name, mode)
}

// Writes one file per worker; returns names of the written files
func (r *Result) WriteFiles(outname string, mode TimeMode) ([]string, error) {
	names := make([]string, 0, len(r.Workers))
	for i := range r.Workers {
		name := FileName(outname, i)
		if err := r.writeFile(name, i, mode); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (r *Result) writeFile(name string, idx int, mode TimeMode) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}

	err = r.WriteReport(file, idx, name, mode)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", name, cerr)
	}
	return err
}

// Writes header and samples of worker `idx`. `name` is used in the loading hint of the header.
func (r *Result) WriteReport(sink io.Writer, idx int, name string, mode TimeMode) error {
	if idx < 0 || idx >= len(r.Workers) {
		return fmt.Errorf("%w: %d", ErrWorker, idx)
	}

	out := bufio.NewWriter(sink)
	r.writeHeader(out, idx, name)

	region := r.Buffer.Region(idx)
	if len(region) > 0 {
		base := region[0].Timestamp
		for _, s := range region {
			fmt.Fprintf(out, "%d %d\n", r.normalize(s.Timestamp-base, mode), s.Count) //nolint:errcheck
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("writing report of worker %d: %w", idx, err)
	}
	return nil
}

func (r *Result) normalize(ticks uint64, mode TimeMode) uint64 {
	if mode == Ticks {
		return ticks
	}
	return uint64(float64(ticks) / r.TicksPerNs)
}

// Errors are sticky in bufio.Writer and reported on flush
//
//nolint:errcheck
func (r *Result) writeHeader(out *bufio.Writer, idx int, name string) {
	wr := r.Workers[idx]
	freq := r.Config.Frequency()

	fmt.Fprintf(out, "# Frequency %f Hz\n", freq)
	fmt.Fprintf(out, "# Quantum %d ns, %d ticks\n", r.Config.Quantum.Nanoseconds(), r.TickInterval)
	fmt.Fprintf(out, "# Ticks per ns %f\n", r.TicksPerNs)
	fmt.Fprintf(out, "# Clock overhead %d ticks\n", r.ClockOverhead)
	fmt.Fprintf(out, "# Worker %d of %d on core %d, pinned %t, realtime %t\n", wr.ID, len(r.Workers), wr.Core, wr.Pinned, wr.Realtime)
	fmt.Fprintf(out, "# Samples %d\n", r.Config.Samples)
	fmt.Fprintf(out, "# Start delay %d ms\n", r.Config.StartDelay.Milliseconds())
	fmt.Fprintf(out, "# Worker count is %d\n", wr.Total)
	fmt.Fprintf(out, "# Total count is %d\n", r.TotalCount)
	fmt.Fprintf(out, "# Max possible work is %d\n", r.MaxWork)
	fmt.Fprintf(out, "# Fraction is %g\n", r.Utilization())
	for _, w := range r.Warnings {
		fmt.Fprintf(out, "# %s\n", w)
	}
	for _, w := range wr.Warnings {
		fmt.Fprintf(out, "# %s\n", w)
	}
	for _, line := range wr.Info {
		fmt.Fprintf(out, "# %s\n", line)
	}
	fmt.Fprintln(out, "# octave: pkg load signal")
	fmt.Fprintf(out, "# x = load('%s')\n", name)
	fmt.Fprintf(out, "# pwelch(x(:,2),[],[],[],%f)\n", freq)
}
