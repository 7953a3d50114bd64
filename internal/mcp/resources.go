// ABOUTME: MCP resource implementations for runlog
// ABOUTME: Provides recent run history as queryable context
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/runlog/internal/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentRunsURI = "runlog://recent-runs"

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	recentRuns := &mcp.Resource{
		URI:         recentRunsURI,
		Name:        "Recent Runs",
		Description: "Last 10 inference runs with exit status and transcript paths",
		MIMEType:    "application/json",
	}
	s.mcpServer.AddResource(recentRuns, s.handleRecentRuns)
}

// handleRecentRuns implements the recent-runs resource.
func (s *Server) handleRecentRuns(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	database, err := db.InitDB(s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	runs, err := db.ListRuns(database, db.RunFilter{Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, summarize(run))
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, err
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      recentRunsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}

	return result, nil
}
