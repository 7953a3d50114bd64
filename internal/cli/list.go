// ABOUTME: List command for displaying recorded runs
// ABOUTME: Supports date filters and table, JSON, or YAML output
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/db"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listLimit      int
	listSince      string
	listUntil      string
	listName       string
	listJSONOutput bool
	listYAMLOutput bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded runs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listJSONOutput && listYAMLOutput {
			return fmt.Errorf("--json and --yaml are mutually exclusive")
		}

		filter := db.RunFilter{Name: listName, Limit: listLimit}

		// Parse dates
		if listSince != "" {
			since, err := dateparse.ParseAny(listSince)
			if err != nil {
				return fmt.Errorf("invalid --since date: %w", err)
			}
			filter.Since = &since
		}
		if listUntil != "" {
			until, err := parseUntil(listUntil)
			if err != nil {
				return fmt.Errorf("invalid --until date: %w", err)
			}
			filter.Until = &until
		}

		// Open database
		database, err := db.InitDB(config.HistoryDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		runs, err := db.ListRuns(database, filter)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if runs == nil {
			runs = []db.Run{}
		}

		out := cmd.OutOrStdout()
		switch {
		case listJSONOutput:
			data, err := json.MarshalIndent(runs, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
		case listYAMLOutput:
			data, err := yaml.Marshal(runs)
			if err != nil {
				return fmt.Errorf("failed to marshal YAML: %w", err)
			}
			fmt.Fprint(out, string(data))
		default:
			printRunTable(out, runs)
		}

		return nil
	},
}

// parseUntil treats a bare date as the whole day, so --until 2026-10-16
// includes runs started that afternoon.
func parseUntil(value string) (time.Time, error) {
	until, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, err
	}
	if isMidnight(until) {
		until = until.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return until, nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func printRunTable(out io.Writer, runs []db.Run) {
	fmt.Fprintln(out, "ID\t\t\t\t\tStarted\t\t\tDuration\tExit\tName")
	fmt.Fprintln(out, "--\t\t\t\t\t-------\t\t\t--------\t----\t----")
	for _, run := range runs {
		started := run.StartedAt.Format("2006-01-02 15:04:05")
		duration := run.Duration().Round(time.Second)
		fmt.Fprintf(out, "%s\t%s\t%s\t\t%s\t%s\n", run.ID, started, duration, exitLabel(run.ExitCode), run.Name)
	}
}

func exitLabel(code int) string {
	if code == 0 {
		return color.GreenString("%d", code)
	}
	return color.RedString("%d", code)
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Number of runs to show")
	listCmd.Flags().StringVar(&listSince, "since", "", "Start date (natural language or ISO)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "End date, inclusive; a bare date covers the whole day")
	listCmd.Flags().StringVar(&listName, "name", "", "Only runs whose name contains this text")
	listCmd.Flags().BoolVar(&listJSONOutput, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listYAMLOutput, "yaml", false, "Output as YAML")
	rootCmd.AddCommand(listCmd)
}
