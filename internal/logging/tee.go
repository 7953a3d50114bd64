// ABOUTME: Fan-out writer duplicating terminal output into the run log
// ABOUTME: Stdout and stderr share one lock so the log keeps terminal order
package logging

import (
	"io"
	"sync"
)

// Tee duplicates two terminal streams into a single log sink.
type Tee struct {
	mu     sync.Mutex
	log    io.Writer
	stdout *teeStream
	stderr *teeStream
}

type teeStream struct {
	tee  *Tee
	term io.Writer
}

// NewTee returns a Tee writing to stdout/stderr and log.
func NewTee(stdout, stderr, log io.Writer) *Tee {
	t := &Tee{log: log}
	t.stdout = &teeStream{tee: t, term: stdout}
	t.stderr = &teeStream{tee: t, term: stderr}
	return t
}

// Stdout returns the writer standing in for standard output.
func (t *Tee) Stdout() io.Writer { return t.stdout }

// Stderr returns the writer standing in for standard error.
func (t *Tee) Stderr() io.Writer { return t.stderr }

// Write goes to the terminal first, then the log. A terminal error still lets
// the log receive the bytes; the first error is returned.
func (s *teeStream) Write(p []byte) (int, error) {
	s.tee.mu.Lock()
	defer s.tee.mu.Unlock()

	_, termErr := s.term.Write(p)
	n, logErr := s.tee.log.Write(p)
	if termErr != nil {
		return len(p), termErr
	}
	if logErr != nil {
		return n, logErr
	}
	if n != len(p) {
		return n, io.ErrShortWrite
	}
	return len(p), nil
}
