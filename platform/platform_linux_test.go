//go:build linux

package platform

import (
	"runtime"
	"testing"

	"github.com/aknopov/ftq/mocker"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestPinToAllowedCore(t *testing.T) {
	assertT := assert.New(t)

	runtime.LockOSThread()
	// exiting locked goroutine retires the pinned thread

	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil || allowed.Count() == 0 {
		t.Skip("affinity is not available")
	}
	core := 0
	for !allowed.IsSet(core) {
		core++
	}

	h := &Host{Clock: mocker.NewClock(0, 1)}
	assertT.NoError(h.PinToCore(core))

	var current unix.CPUSet
	assertT.NoError(unix.SchedGetaffinity(0, &current))
	assertT.Equal(1, current.Count())
	assertT.True(current.IsSet(core))
}
