// ABOUTME: MCP server implementation for runlog
// ABOUTME: Provides tools and resources for AI assistants to inspect inference runs
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with run history access.
type Server struct {
	mcpServer *mcp.Server
	dbPath    string
}

// NewServer creates a new runlog MCP server backed by the history database.
func NewServer(dbPath string) *Server {
	impl := &mcp.Implementation{
		Name:    "runlog",
		Version: "0.1.0",
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		dbPath:    dbPath,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
