// ABOUTME: Run command: one logged inference run
// ABOUTME: Merges .runlog config with flags, runs the session, records history
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/harper/runlog/internal/charm"
	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/db"
	"github.com/harper/runlog/internal/logging"
	"github.com/harper/runlog/internal/runlog"
	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	runName      string
	runLogDir    string
	runSettings  string
	runRunner    string
	runLogLevel  string
	runStrict    bool
	runAppend    bool
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the inference runner with a logged transcript",
	Long: `Prompt for a run name, create the log directory, and tee everything that
follows into <log dir>/<run name>_run.log: the settings file, then the output
of the inference runner. Exits with the runner's status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Resolve(workDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyRunFlags(cmd, cfg)

		session := runlog.NewSession(runlog.Options{
			RunName:      runName,
			LogDir:       cfg.LogDir,
			SettingsFile: cfg.SettingsFile,
			Runner:       cfg.Runner,
			StrictNames:  cfg.StrictNames,
			Append:       cfg.Append,
			WorkDir:      workDir,
		},
			runlog.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
			runlog.WithLogLevel(runLogLevel),
		)

		result, runErr := session.Run(cmd.Context())
		if result != nil && cfg.History {
			recordRun(cmd.ErrOrStderr(), cfg, result, workDir)
		}
		return runErr
	},
}

// applyRunFlags lets explicitly set flags override the config file.
func applyRunFlags(cmd *cobra.Command, cfg *config.ProjectConfig) {
	flags := cmd.Flags()
	if flags.Changed("log-dir") {
		cfg.LogDir = runLogDir
	}
	if flags.Changed("settings") {
		cfg.SettingsFile = runSettings
	}
	if flags.Changed("runner") {
		cfg.Runner = runRunner
	}
	if flags.Changed("strict-name") {
		cfg.StrictNames = runStrict
	}
	if flags.Changed("append") {
		cfg.Append = runAppend
	}
	if runNoHistory {
		cfg.History = false
	}
}

// recordRun saves the run to history and, when enabled, to Charm.
// Failures are warnings: the run itself already happened.
func recordRun(stderr io.Writer, cfg *config.ProjectConfig, result *runlog.Result, workDir string) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = unknownValue
	}
	username := os.Getenv("USER")
	if username == "" {
		username = unknownValue
	}

	run := db.Run{
		Name:             result.Name,
		LogPath:          result.LogPath,
		SettingsPath:     result.SettingsPath,
		Runner:           result.Runner,
		StartedAt:        result.StartedAt,
		FinishedAt:       result.FinishedAt,
		ExitCode:         result.ExitCode,
		Hostname:         hostname,
		Username:         username,
		WorkingDirectory: workDir,
	}

	database, err := db.InitDB(config.HistoryDBPath())
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to open run history: %v\n", err)
		return
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			fmt.Fprintf(stderr, "Warning: failed to close run history: %v\n", closeErr)
		}
	}()

	run.ID, err = db.CreateRun(database, run)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to record run: %v\n", err)
		return
	}

	if !cfg.Sync {
		return
	}
	client, err := charm.NewClient(charm.Config{CharmHost: cfg.CharmHost, AutoSync: true})
	if err == nil {
		err = client.PushRun(run)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to sync run: %v\n", err)
	}
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "Run name (skips the prompt)")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", config.DefaultLogDir, "Directory for run transcripts")
	runCmd.Flags().StringVar(&runSettings, "settings", config.DefaultSettingsFile, "Settings file to print before the run")
	runCmd.Flags().StringVar(&runRunner, "runner", config.DefaultRunner, "Inference runner to execute")
	runCmd.Flags().StringVar(&runLogLevel, "log", logging.DefaultLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&runStrict, "strict-name", false, "Reject run names that would escape the log directory")
	runCmd.Flags().BoolVar(&runAppend, "append", false, "Append to an existing transcript instead of replacing it")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Do not record the run in the history database")
	rootCmd.AddCommand(runCmd)
}
