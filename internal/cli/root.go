// ABOUTME: Root command definition and CLI setup
// ABOUTME: Routes a bare invocation to the run command
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Logged inference runs",
	Long: `Runlog asks for a run name, then tees the settings file and the output of the
inference runner into inference_logs/<run name>_run.log and exits with the
runner's status.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(withDefaultCommand(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// withDefaultCommand injects "run" unless the first argument names a
// command or asks for help, so the bare binary behaves like the run script.
func withDefaultCommand(args []string) []string {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help", "completion", "__complete":
			return args
		}
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == args[0] || cmd.HasAlias(args[0]) {
				return args
			}
		}
	}
	return append([]string{"run"}, args...)
}
