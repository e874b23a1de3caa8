// Checks format of FTQ output files
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aknopov/fancylogger"
)

var (
	logger = fancylogger.NewLogger(os.Stderr, fancylogger.LiteFg)
)

func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}

	bad := 0
	for _, name := range files {
		cnt, err := checkFile(name, os.Stdout)
		if err != nil {
			logger.Error().Err(err).Str("file", name).Msg("Can't check")
			os.Exit(1)
		}
		bad += cnt
	}

	if bad > 0 {
		os.Exit(1)
	}
}

// Reports problems of the file ("-" for stdin) to `sink`; returns their count
func checkFile(name string, sink io.Writer) (int, error) {
	var in io.Reader = os.Stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer file.Close() //nolint:errcheck
		in = file
	}

	problems, err := check(in)
	if err != nil {
		return 0, err
	}

	for _, p := range problems {
		if _, err := fmt.Fprintf(sink, "%s: %s\n", name, p); err != nil {
			return 0, err
		}
	}
	return len(problems), nil
}
