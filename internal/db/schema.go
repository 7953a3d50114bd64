// ABOUTME: Database schema definitions
// ABOUTME: SQL for the runs table and its indexes
package db

// Timestamps are unix nanoseconds so range filters compare as integers.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    log_path TEXT NOT NULL,
    settings_path TEXT NOT NULL,
    runner TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,
    exit_code INTEGER NOT NULL,
    hostname TEXT NOT NULL,
    username TEXT NOT NULL,
    working_directory TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);
`
