// ABOUTME: Run session: prompt, log directory, tee, settings dump, runner
// ABOUTME: Strictly sequential; every step after the tee is mirrored into the run log
package runlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/logging"
)

const runNamePrompt = "Enter run name: "

// Options control where a session reads and writes.
type Options struct {
	// RunName skips the prompt when set.
	RunName      string
	LogDir       string
	SettingsFile string
	Runner       string
	StrictNames  bool
	Append       bool
	// WorkDir is where relative paths resolve and the runner executes.
	WorkDir string
}

// Result describes a session that got far enough to open its log.
type Result struct {
	Name         string
	LogPath      string
	SettingsPath string
	Runner       string
	StartedAt    time.Time
	FinishedAt   time.Time
	ExitCode     int
}

// Session runs one logged inference run.
type Session struct {
	opts     Options
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logLevel string
	now      func() time.Time
	// stopTimeout is the grace period between interrupting a cancelled
	// runner and killing it.
	stopTimeout time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithStdio replaces the process streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *Session) {
		s.stdin = stdin
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithLogLevel sets the diagnostic log level.
func WithLogLevel(level string) Option {
	return func(s *Session) {
		s.logLevel = level
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithStopTimeout sets how long a cancelled runner may take to clean up.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.stopTimeout = d
	}
}

// NewSession creates a session. Empty option paths fall back to the
// config defaults.
func NewSession(opts Options, options ...Option) *Session {
	if opts.LogDir == "" {
		opts.LogDir = config.DefaultLogDir
	}
	if opts.SettingsFile == "" {
		opts.SettingsFile = config.DefaultSettingsFile
	}
	if opts.Runner == "" {
		opts.Runner = config.DefaultRunner
	}

	s := &Session{
		opts:     opts,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logLevel: logging.DefaultLevel,
		now:      time.Now,

		stopTimeout: DefaultStopTimeout,
	}
	for _, o := range options {
		o(s)
	}
	if s.stopTimeout <= 0 {
		s.stopTimeout = DefaultStopTimeout
	}
	return s
}

// Run executes the session. Result is nil when the run log was never opened.
// Errors raised after that point have already been written to the transcript
// and come back as *ExitError with Reported set.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	workDir := s.opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	logger, err := logging.NewLogger(s.logLevel, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	name, err := s.runName()
	if err != nil {
		return nil, err
	}
	if err := ValidateRunName(name, s.opts.StrictNames); err != nil {
		return nil, err
	}

	logDir := resolve(workDir, s.opts.LogDir)
	if err := logging.EnsureLogDir(logDir); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logFile, err := logging.OpenRunLog(logDir, name, s.opts.Append)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	tee := logging.NewTee(s.stdout, s.stderr, logFile)
	logger.SetOutput(tee.Stderr())

	result := &Result{
		Name:         name,
		LogPath:      logging.LogPath(logDir, name),
		SettingsPath: resolve(workDir, s.opts.SettingsFile),
		Runner:       resolve(workDir, s.opts.Runner),
		StartedAt:    s.now(),
	}
	log := logger.WithField("run", name)
	log.WithField("log", result.LogPath).Debug("transcript opened")

	code, err := s.execute(ctx, tee, log, result, workDir)
	result.ExitCode = code
	result.FinishedAt = s.now()
	if err != nil {
		fmt.Fprintf(tee.Stderr(), "Error: %v\n", err)
		return result, &ExitError{Code: code, Err: err, Reported: true}
	}
	if code != 0 {
		log.WithField("status", code).Info("runner failed")
		return result, &ExitError{
			Code:     code,
			Err:      fmt.Errorf("%s exited with status %d", filepath.Base(result.Runner), code),
			Reported: true,
		}
	}
	log.Debug("run complete")
	return result, nil
}

func (s *Session) runName() (string, error) {
	if s.opts.RunName != "" {
		return s.opts.RunName, nil
	}
	if _, err := color.New(color.FgCyan).Fprint(s.stdout, runNamePrompt); err != nil {
		return "", err
	}
	return ReadRunName(s.stdin)
}

// execute runs the teed steps: settings dump then runner.
func (s *Session) execute(ctx context.Context, tee *logging.Tee, log *logrus.Entry, result *Result, workDir string) (int, error) {
	out := tee.Stdout()

	fmt.Fprintf(out, "Contents of %s:\n", filepath.Base(s.opts.SettingsFile))
	settings, err := os.ReadFile(result.SettingsPath)
	if err != nil {
		return ExitFailure, fmt.Errorf("read settings: %w", err)
	}
	if _, err := out.Write(settings); err != nil {
		return ExitFailure, fmt.Errorf("write settings: %w", err)
	}
	fmt.Fprintln(out)
	log.WithField("bytes", len(settings)).Debug("settings dumped")

	fmt.Fprintf(out, "Running %s:\n", filepath.Base(s.opts.Runner))
	log.WithField("runner", result.Runner).Debug("starting runner")
	return runInference(ctx, result.Runner, workDir, s.stdin, out, tee.Stderr(), s.stopTimeout)
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
