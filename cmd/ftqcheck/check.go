package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	maxLineLen = 1024 * 1024
)

// Malformed line of FTQ output
type Problem struct {
	Line   int
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Reason)
}

// Validates FTQ output - comment lines are skipped, all others should hold two unsigned integers.
// Line numbers start with 1.
func check(r io.Reader) ([]Problem, error) {
	problems := make([]Problem, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for no := 1; scanner.Scan(); no++ {
		line := scanner.Text()
		if len(line) == 0 {
			problems = append(problems, Problem{no, "empty line"})
			continue
		}
		if line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			problems = append(problems, Problem{no, fmt.Sprintf("%d fields, not 2", len(fields))})
			continue
		}
		for i, fld := range fields {
			if _, err := strconv.ParseUint(fld, 10, 64); err != nil {
				problems = append(problems, Problem{no, fmt.Sprintf("field %d (%q) is not a number", i, fld)})
			}
		}
	}

	return problems, scanner.Err()
}
