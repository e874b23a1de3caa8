package mocker

import (
	"bytes"
	"io"
	"os"
)

// Pipe-backed file that accumulates everything written to it
type Stream struct {
	file *os.File
	outC chan string
}

func NewStream() (*Stream, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		outC <- buf.String()
	}()

	return &Stream{file: w, outC: outC}, nil
}

// Writing end of the stream
func (s *Stream) File() *os.File {
	return s.file
}

// Closes writing end and returns collected output
func (s *Stream) Content() string {
	_ = s.file.Close()
	return <-s.outC
}
