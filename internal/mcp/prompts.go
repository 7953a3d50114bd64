// ABOUTME: MCP prompt definitions for runlog
// ABOUTME: Provides static context to AI assistants about runlog capabilities
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "runlog-getting-started",
		Description: "Introduction to runlog and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Runlog wraps inference runs. Each run has a name, and its full transcript
(the settings file it used plus everything the inference runner printed) is
saved to inference_logs/<run name>_run.log.

When to use runlog:
- User asks how a recent run went or why it failed
- User wants to compare the settings of two runs
- User asks which runs exited non-zero

Use list_runs to find runs and read_run_log to fetch a transcript.
A non-zero exit_code means the runner failed; 126 and 127 mean it could not be started.`

		result := &mcp.GetPromptResult{
			Description: "Getting started with runlog",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
