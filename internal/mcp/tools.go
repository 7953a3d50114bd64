// ABOUTME: MCP tool implementations for runlog
// ABOUTME: Lists recorded runs and returns their transcripts
package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harper/runlog/internal/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

// ListRunsInput defines the input for list_runs tool.
type ListRunsInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of runs to return (default 20)"`
	Name  string `json:"name,omitempty" jsonschema:"Only runs whose name contains this text"`
}

// RunSummary is the tool-facing view of a run record.
type RunSummary struct {
	ID         string `json:"id" jsonschema:"Run ID"`
	Name       string `json:"name" jsonschema:"Run name typed at the prompt"`
	LogPath    string `json:"log_path" jsonschema:"Transcript file"`
	StartedAt  string `json:"started_at" jsonschema:"Start time (RFC 3339)"`
	FinishedAt string `json:"finished_at" jsonschema:"End time (RFC 3339)"`
	ExitCode   int    `json:"exit_code" jsonschema:"Exit status of the inference runner"`
}

// ListRunsOutput defines the output for list_runs tool.
type ListRunsOutput struct {
	Runs []RunSummary `json:"runs" jsonschema:"Runs, most recent first"`
}

// ReadRunLogInput defines the input for read_run_log tool.
type ReadRunLogInput struct {
	Run string `json:"run" jsonschema:"Run ID or run name (newest run with that name)"`
}

// ReadRunLogOutput defines the output for read_run_log tool.
type ReadRunLogOutput struct {
	Run        RunSummary `json:"run" jsonschema:"The run the transcript belongs to"`
	Transcript string     `json:"transcript" jsonschema:"Full transcript text"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	listRunsTool := &mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded inference runs with their exit status. Use this to find out what was run recently and whether it succeeded.",
	}
	mcp.AddTool(s.mcpServer, listRunsTool, s.handleListRuns)

	readRunLogTool := &mcp.Tool{
		Name:        "read_run_log",
		Description: "Read the full transcript of an inference run: the settings it used and everything the runner printed.",
	}
	mcp.AddTool(s.mcpServer, readRunLogTool, s.handleReadRunLog)
}

// handleListRuns implements the list_runs tool.
func (s *Server) handleListRuns(ctx context.Context, req *mcp.CallToolRequest, input ListRunsInput) (*mcp.CallToolResult, ListRunsOutput, error) {
	database, err := db.InitDB(s.dbPath)
	if err != nil {
		return nil, ListRunsOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	runs, err := db.ListRuns(database, db.RunFilter{Name: input.Name, Limit: limit})
	if err != nil {
		return nil, ListRunsOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}

	output := ListRunsOutput{Runs: make([]RunSummary, 0, len(runs))}
	for _, run := range runs {
		output.Runs = append(output.Runs, summarize(run))
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Found %d runs", len(output.Runs)),
			},
		},
	}

	return result, output, nil
}

// handleReadRunLog implements the read_run_log tool.
func (s *Server) handleReadRunLog(ctx context.Context, req *mcp.CallToolRequest, input ReadRunLogInput) (*mcp.CallToolResult, ReadRunLogOutput, error) {
	if input.Run == "" {
		return nil, ReadRunLogOutput{}, errors.New("run is required")
	}

	database, err := db.InitDB(s.dbPath)
	if err != nil {
		return nil, ReadRunLogOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	run, err := db.GetRun(database, input.Run)
	if err != nil {
		return nil, ReadRunLogOutput{}, fmt.Errorf("failed to find run %q: %w", input.Run, err)
	}

	transcript, err := os.ReadFile(run.LogPath)
	if err != nil {
		return nil, ReadRunLogOutput{}, fmt.Errorf("failed to read transcript: %w", err)
	}

	output := ReadRunLogOutput{
		Run:        summarize(*run),
		Transcript: string(transcript),
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: output.Transcript,
			},
		},
	}

	return result, output, nil
}

func summarize(run db.Run) RunSummary {
	return RunSummary{
		ID:         run.ID,
		Name:       run.Name,
		LogPath:    run.LogPath,
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		FinishedAt: run.FinishedAt.Format(time.RFC3339),
		ExitCode:   run.ExitCode,
	}
}
