// ABOUTME: Run record creation and queries
// ABOUTME: Every session that opens a transcript gets one row
package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no run matches an ID or name.
var ErrRunNotFound = errors.New("run not found")

type Run struct {
	ID               string    `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	LogPath          string    `json:"log_path" yaml:"log_path"`
	SettingsPath     string    `json:"settings_path" yaml:"settings_path"`
	Runner           string    `json:"runner" yaml:"runner"`
	StartedAt        time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt       time.Time `json:"finished_at" yaml:"finished_at"`
	ExitCode         int       `json:"exit_code" yaml:"exit_code"`
	Hostname         string    `json:"hostname" yaml:"hostname"`
	Username         string    `json:"username" yaml:"username"`
	WorkingDirectory string    `json:"working_directory" yaml:"working_directory"`
}

// Duration is how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// CreateRun inserts a run and returns its ID, generating one if needed
func CreateRun(db *sql.DB, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := db.Exec(`
		INSERT INTO runs (id, name, log_path, settings_path, runner, started_at, finished_at,
			exit_code, hostname, username, working_directory)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.LogPath, run.SettingsPath, run.Runner,
		run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(), run.ExitCode,
		run.Hostname, run.Username, run.WorkingDirectory,
	)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

type RunFilter struct {
	Name  string
	Since *time.Time
	Until *time.Time
	Limit int
}

const runColumns = `id, name, log_path, settings_path, runner, started_at, finished_at,
	exit_code, hostname, username, working_directory`

// ListRuns returns runs matching filter, most recent first
func ListRuns(db *sql.DB, filter RunFilter) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs"
	var conditions []string
	var args []interface{}

	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, filter.Since.UnixNano())
	}
	if filter.Until != nil {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, filter.Until.UnixNano())
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY started_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun looks up a run by ID, then by exact name (newest wins)
func GetRun(db *sql.DB, idOrName string) (*Run, error) {
	row := db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", idOrName)
	run, err := scanRun(row)
	if err == nil {
		return &run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	row = db.QueryRow("SELECT "+runColumns+" FROM runs WHERE name = ? ORDER BY started_at DESC LIMIT 1", idOrName)
	run, err = scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var started, finished int64
	err := s.Scan(&run.ID, &run.Name, &run.LogPath, &run.SettingsPath, &run.Runner,
		&started, &finished, &run.ExitCode, &run.Hostname, &run.Username, &run.WorkingDirectory)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(0, started)
	run.FinishedAt = time.Unix(0, finished)
	return run, nil
}
