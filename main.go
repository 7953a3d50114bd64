// ABOUTME: Runlog CLI - Entry point for logged inference runs
// ABOUTME: Initializes CLI and exits with the inference runner's status
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/runlog/internal/cli"
	"github.com/harper/runlog/internal/runlog"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Errors raised inside a run were already printed to the transcript
		var exitErr *runlog.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(runlog.ExitCode(err))
	}
}
