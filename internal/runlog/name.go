// ABOUTME: Run name input and optional validation
// ABOUTME: Reads a single line without consuming the child's stdin
package runlog

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoRunName is returned when stdin closes before any name is typed.
	ErrNoRunName = errors.New("no run name given")

	// ErrInvalidRunName is returned by strict validation.
	ErrInvalidRunName = errors.New("invalid run name")
)

// ReadRunName reads one line from r and strips its line terminator.
// It reads a byte at a time so nothing past the newline is consumed.
func ReadRunName(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(string(line), "\r"), nil
			}
			line = append(line, buf[0])
		}
		if err == io.EOF {
			if len(line) == 0 {
				return "", ErrNoRunName
			}
			return strings.TrimSuffix(string(line), "\r"), nil
		}
		if err != nil {
			return "", fmt.Errorf("read run name: %w", err)
		}
	}
}

// ValidateRunName accepts anything unless strict is set. Strict mode keeps
// the log file inside the log directory.
func ValidateRunName(name string, strict bool) error {
	if !strict {
		return nil
	}
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidRunName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidRunName, name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains '..'", ErrInvalidRunName, name)
	}
	return nil
}
