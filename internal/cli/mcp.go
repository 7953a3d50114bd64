// ABOUTME: MCP subcommand for running the runlog MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the runlog MCP server",
	Long:  `Start the Model Context Protocol server so AI assistants can read run history and transcripts over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(config.HistoryDBPath())
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
