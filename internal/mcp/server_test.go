// ABOUTME: Tests for MCP server
// ABOUTME: Validates server initialization and configuration
package mcp

import (
	"path/filepath"
	"testing"
)

func TestNewServer(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runlog.db")

	server := NewServer(dbPath)
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("expected underlying MCP server to be created")
	}
	if server.dbPath != dbPath {
		t.Errorf("got dbPath %s, want %s", server.dbPath, dbPath)
	}
}
