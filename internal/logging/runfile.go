// ABOUTME: Run log file placement and opening
// ABOUTME: One transcript file per run name inside the log directory
package logging

import (
	"os"
	"path/filepath"
)

const runLogSuffix = "_run.log"

// LogPath returns dir/<runName>_run.log. The run name is not cleaned, so any
// separators it carries become part of the path.
func LogPath(dir, runName string) string {
	return dir + string(filepath.Separator) + runName + runLogSuffix
}

// EnsureLogDir creates the log directory if needed
func EnsureLogDir(dir string) error {
	return os.MkdirAll(dir, 0755) //nolint:gosec // Log directory is meant to be readable
}

// OpenRunLog opens the transcript file for runName. The file is truncated
// unless appendMode is set. The directory must already exist.
func OpenRunLog(dir, runName string, appendMode bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(LogPath(dir, runName), flags, 0644) //nolint:gosec // Transcripts are shared with the team
}
