// ABOUTME: Inference runner invocation
// ABOUTME: Runs the child synchronously and forwards its output as it arrives
package runlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// DefaultStopTimeout is how long a cancelled runner gets to exit after the
// interrupt before it is killed and its output pipes are closed.
const DefaultStopTimeout = 10 * time.Second

// runInference starts path in dir and blocks until it exits and its output
// is drained. Cancelling ctx interrupts the runner instead of killing it, so
// its own cleanup still runs and reaches the transcript. The returned code is
// meaningful even when err is non-nil.
func runInference(ctx context.Context, path, dir string, stdin io.Reader, stdout, stderr io.Writer, stopTimeout time.Duration) (int, error) {
	out := &forwarder{w: stdout}
	errOut := &forwarder{w: stderr}

	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = errOut
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	// Also bounds the wait on pipes held open by orphaned grandchildren.
	cmd.WaitDelay = stopTimeout

	if err := cmd.Start(); err != nil {
		return startFailureCode(err), fmt.Errorf("start %s: %w", path, err)
	}

	waitErr := cmd.Wait()
	if cmd.ProcessState == nil {
		return ExitFailure, fmt.Errorf("wait for %s: %w", path, waitErr)
	}

	code := exitStatus(cmd.ProcessState)
	if code != 0 {
		return code, nil
	}
	if err := errors.Join(out.err, errOut.err); err != nil {
		return ExitFailure, fmt.Errorf("forward output: %w", err)
	}
	return 0, nil
}

// forwarder passes each chunk straight through. After the first write
// failure it keeps swallowing output so the child never blocks on a full
// pipe. Each forwarder is written by a single exec copy goroutine and read
// only after Wait returns.
type forwarder struct {
	w   io.Writer
	err error
}

func (f *forwarder) Write(p []byte) (int, error) {
	if f.err == nil {
		_, f.err = f.w.Write(p)
	}
	return len(p), nil
}

func startFailureCode(err error) int {
	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	return ExitCannotExec
}

func exitStatus(state *os.ProcessState) int {
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return exitSignalOffset + int(ws.Signal())
	}
	return ExitFailure
}
