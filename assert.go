package ftq

import (
	"fmt"
	"os"
)

// Recover from error - assume default value
func AssumeOnErr[T any](f func() (T, error), defVal T) T {
	val, err := f()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return defVal
	}
	return val
}
