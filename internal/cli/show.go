// ABOUTME: Show command for printing a run's transcript
// ABOUTME: Looks runs up by ID or by name (newest wins)
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/db"
	"github.com/spf13/cobra"
)

var showPathOnly bool

var showCmd = &cobra.Command{
	Use:   "show [id|name]",
	Short: "Print the transcript of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.InitDB(config.HistoryDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		run, err := db.GetRun(database, args[0])
		if errors.Is(err, db.ErrRunNotFound) {
			return fmt.Errorf("no run named or with ID %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to look up run: %w", err)
		}

		if showPathOnly {
			fmt.Fprintln(cmd.OutOrStdout(), run.LogPath)
			return nil
		}

		transcript, err := os.ReadFile(run.LogPath)
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}

		// Header goes to stderr so stdout stays a byte-exact copy of the log
		header := color.New(color.Bold)
		header.Fprintf(cmd.ErrOrStderr(), "%s (%s) started %s, exit %s\n",
			run.Name, run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), exitLabel(run.ExitCode))
		_, err = cmd.OutOrStdout().Write(transcript)
		return err
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPathOnly, "path", false, "Print only the transcript path")
	rootCmd.AddCommand(showCmd)
}
