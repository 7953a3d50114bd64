// ABOUTME: Diagnostic logger setup
// ABOUTME: Leveled logrus logger kept separate from the transcript content
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps diagnostics out of transcripts unless something is wrong.
const DefaultLevel = "warn"

// NewLogger builds a logrus logger writing to out at the named level.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return logger, nil
}
