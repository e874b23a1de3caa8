package param

import (
	"flag"
	"testing"
	"time"

	"github.com/aknopov/ftq"
	"github.com/aknopov/ftq/platform"
	"github.com/stretchr/testify/assert"
)

func TestParseDefaults(t *testing.T) {
	assertT := assert.New(t)

	opts, err := ParseParams([]string{"/usr/bin/ftq"}, func() {})
	assertT.NoError(err)

	assertT.Equal("ftq", opts.ProgName)
	assertT.Equal(DefaultOutName, opts.OutName)
	assertT.Equal(platform.ClockTSC, opts.Clock)
	assertT.Equal(ftq.Nanoseconds, opts.Mode)
	assertT.False(opts.Stdout)
	assertT.Equal(ftq.DefaultConfig(), opts.Config)
}

// Google AI generate
func TestParseParams(t *testing.T) {
	assertT := assert.New(t)

	testCases := []struct {
		name   string
		args   []string
		check  func(*Options)
		expErr error
	}{
		{
			name:  "Threads and samples",
			args:  []string{"ftq", "-t", "4", "-n", "500"},
			check: func(o *Options) { assertT.Equal(4, o.Threads); assertT.Equal(500, o.Samples) },
		},
		{
			name:  "Frequency",
			args:  []string{"ftq", "-f", "10000"},
			check: func(o *Options) { assertT.Equal(100*time.Microsecond, o.Quantum) },
		},
		{
			name: "Frequency above 1 GHz",
			args: []string{"ftq", "-f", "3e9"},
			check: func(o *Options) {
				assertT.Equal(time.Nanosecond, o.Quantum)
				warnings, err := o.Normalize()
				assertT.NoError(err)
				assertT.Equal(ftq.MinQuantum, o.Quantum)
				assertT.Len(warnings, 1)
			},
		},
		{
			name:  "Interval",
			args:  []string{"ftq", "-i", "250000"},
			check: func(o *Options) { assertT.Equal(250*time.Microsecond, o.Quantum) },
		},
		{
			name: "Flags",
			args: []string{"ftq", "-w", "-r", "-rtfree", "3", "-d", "20", "-T", "2.5", "-nopin", "-ticks", "-warmup", "7"},
			check: func(o *Options) {
				assertT.True(o.IgnorePinFailures)
				assertT.True(o.Realtime)
				assertT.Equal(3, o.RtFreeCores)
				assertT.Equal(20*time.Millisecond, o.StartDelay)
				assertT.Equal(2.5, o.TicksPerNs)
				assertT.False(o.Pin)
				assertT.Equal(ftq.Ticks, o.Mode)
				assertT.Equal(7, o.Warmup)
			},
		},
		{
			name:  "Output",
			args:  []string{"ftq", "-o", "/tmp/noise", "-clock", "mono"},
			check: func(o *Options) { assertT.Equal("/tmp/noise", o.OutName); assertT.Equal(platform.ClockMono, o.Clock) },
		},
		{
			name:  "Stdout",
			args:  []string{"ftq", "-s"},
			check: func(o *Options) { assertT.True(o.Stdout) },
		},
		{
			name:   "Stdout with threads",
			args:   []string{"ftq", "-s", "-t", "2"},
			expErr: ErrStdoutThreads,
		},
		{
			name:   "Frequency and interval",
			args:   []string{"ftq", "-f", "1000", "-i", "1000"},
			expErr: ErrQuantumFlags,
		},
		{
			name:   "Zero frequency",
			args:   []string{"ftq", "-f", "0"},
			expErr: ErrFrequency,
		},
		{
			name:   "Unknown clock",
			args:   []string{"ftq", "-clock", "hpet"},
			expErr: platform.ErrUnknownClock,
		},
		{
			name:   "Extra args",
			args:   []string{"ftq", "foo"},
			expErr: ErrExtraArgs,
		},
	}

	for _, tc := range testCases {
		opts, err := ParseParams(tc.args, func() {})

		if tc.expErr != nil {
			assertT.ErrorIs(err, tc.expErr, "In test", tc.name)
			assertT.Nil(opts, "In test", tc.name)
			continue
		}

		assertT.NoError(err, "In test", tc.name)
		tc.check(opts)
	}
}

func TestParseWrongFlag(t *testing.T) {
	assertT := assert.New(t)

	usageCalls := 0
	_, err := ParseParams([]string{"ftq", "-foo"}, func() { usageCalls++ })
	assertT.Error(err)
	assertT.Equal(1, usageCalls)

	_, err = ParseParams([]string{"ftq", "-h"}, func() { usageCalls++ })
	assertT.ErrorIs(err, flag.ErrHelp)
	assertT.Equal(2, usageCalls)
}
