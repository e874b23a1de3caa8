//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// Function substitutions for unit tests
var (
	execF = unix.Exec
)

// Replaces the process with a copy that runs without asynchronous preemption signals.
// The runtime reads GODEBUG only at startup, so the setting can't be changed in place.
// Returns nil without doing anything when the setting is already in effect.
func ensureNoPreempt() error {
	if hasNoPreempt(os.Getenv("GODEBUG")) {
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return execF(exe, os.Args, withNoPreempt(os.Environ()))
}
