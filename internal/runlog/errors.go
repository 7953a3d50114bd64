// ABOUTME: Exit status carried through error returns
// ABOUTME: Lets main exit with the runner's code without double reporting
package runlog

import (
	"errors"
	"fmt"
)

// Exit codes used when the runner never produced one.
const (
	ExitFailure      = 1
	ExitCannotExec   = 126
	ExitNotFound     = 127
	exitSignalOffset = 128
)

// ExitError carries the status this process should exit with.
// Reported means the message already reached the transcript.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
