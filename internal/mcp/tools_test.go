// ABOUTME: Tests for MCP tools and resources
// ABOUTME: Calls handlers directly against a temp history database
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/runlog/internal/db"
)

// seedRuns records two runs with transcripts and returns the server.
func seedRuns(t *testing.T) *Server {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runlog.db")

	database, err := db.InitDB(dbPath)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	defer func() { _ = database.Close() }()

	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"baseline", "sweep-lr"} {
		logPath := filepath.Join(tmpDir, name+"_run.log")
		transcript := "Contents of settings.py:\nBATCH=1\n\nRunning run_inference.sh:\n" + name + " done\n"
		if err := os.WriteFile(logPath, []byte(transcript), 0644); err != nil { //nolint:gosec // Test file permissions
			t.Fatalf("failed to write transcript: %v", err)
		}
		_, err := db.CreateRun(database, db.Run{
			Name:       name,
			LogPath:    logPath,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			ExitCode:   i,
		})
		if err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
	}

	return NewServer(dbPath)
}

func TestListRunsTool(t *testing.T) {
	server := seedRuns(t)

	result, output, err := server.handleListRuns(context.Background(), nil, ListRunsInput{})
	if err != nil {
		t.Fatalf("handleListRuns failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if len(output.Runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(output.Runs))
	}
	if output.Runs[0].Name != "sweep-lr" || output.Runs[0].ExitCode != 1 {
		t.Errorf("expected newest run first, got %+v", output.Runs[0])
	}

	_, filtered, err := server.handleListRuns(context.Background(), nil, ListRunsInput{Name: "base"})
	if err != nil {
		t.Fatalf("handleListRuns failed: %v", err)
	}
	if len(filtered.Runs) != 1 || filtered.Runs[0].Name != "baseline" {
		t.Errorf("unexpected filtered runs: %+v", filtered.Runs)
	}
}

func TestReadRunLogTool(t *testing.T) {
	server := seedRuns(t)

	_, output, err := server.handleReadRunLog(context.Background(), nil, ReadRunLogInput{Run: "baseline"})
	if err != nil {
		t.Fatalf("handleReadRunLog failed: %v", err)
	}
	if !strings.Contains(output.Transcript, "baseline done") {
		t.Errorf("unexpected transcript: %s", output.Transcript)
	}
	if output.Run.Name != "baseline" {
		t.Errorf("got run %s, want baseline", output.Run.Name)
	}

	if _, _, err := server.handleReadRunLog(context.Background(), nil, ReadRunLogInput{Run: "missing"}); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, _, err := server.handleReadRunLog(context.Background(), nil, ReadRunLogInput{}); err == nil {
		t.Error("expected error for empty run")
	}
}

func TestRecentRunsResource(t *testing.T) {
	server := seedRuns(t)

	result, err := server.handleRecentRuns(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleRecentRuns failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(result.Contents))
	}

	var summaries []RunSummary
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &summaries); err != nil {
		t.Fatalf("resource is not valid JSON: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("got %d summaries, want 2", len(summaries))
	}
}
