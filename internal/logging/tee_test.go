// ABOUTME: Tests for the fan-out writer
// ABOUTME: Checks ordering, stream separation, and error reporting
package logging

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeDuplicatesBothStreams(t *testing.T) {
	var stdout, stderr, log bytes.Buffer
	tee := NewTee(&stdout, &stderr, &log)

	fmt.Fprintln(tee.Stdout(), "out one")
	fmt.Fprintln(tee.Stderr(), "err one")
	fmt.Fprintln(tee.Stdout(), "out two")

	assert.Equal(t, "out one\nout two\n", stdout.String())
	assert.Equal(t, "err one\n", stderr.String())
	assert.Equal(t, "out one\nerr one\nout two\n", log.String())
}

func TestTeeLogMatchesCombinedTerminal(t *testing.T) {
	var terminal, log bytes.Buffer
	tee := NewTee(&terminal, &terminal, &log)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := tee.Stdout()
			if i%2 == 1 {
				w = tee.Stderr()
			}
			fmt.Fprintf(w, "line %d\n", i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, terminal.String(), log.String())
	assert.Len(t, strings.Split(strings.TrimSpace(log.String()), "\n"), 20)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("terminal gone") }

func TestTeeKeepsLoggingWhenTerminalFails(t *testing.T) {
	var log bytes.Buffer
	tee := NewTee(failingWriter{}, failingWriter{}, &log)

	_, err := tee.Stdout().Write([]byte("still logged\n"))
	require.Error(t, err)
	assert.Equal(t, "still logged\n", log.String())
}

func TestTeeReportsLogFailure(t *testing.T) {
	var stdout bytes.Buffer
	tee := NewTee(&stdout, &stdout, failingWriter{})

	_, err := tee.Stdout().Write([]byte("x"))
	assert.EqualError(t, err, "terminal gone")
	assert.Equal(t, "x", stdout.String())
}
