//go:build !unix

package main

// Process replacement is not available; asynchronous preemption stays enabled.
func ensureNoPreempt() error {
	return nil
}
