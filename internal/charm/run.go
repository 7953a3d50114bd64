// ABOUTME: Run record backup to Charm KV
// ABOUTME: Uses type-prefixed keys (run:uuid) holding JSON run records
package charm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/charm/kv"

	"github.com/harper/runlog/internal/db"
)

// runKey returns the KV key for a run.
func runKey(id string) []byte {
	return []byte(RunPrefix + id)
}

// PushRun stores a run record.
func (c *Client) PushRun(run db.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID required")
	}
	if err := c.SetJSON(runKey(run.ID), run); err != nil {
		return fmt.Errorf("push run: %w", err)
	}
	return nil
}

// GetRun retrieves a run record by ID.
func (c *Client) GetRun(id string) (*db.Run, error) {
	var run db.Run
	if err := c.GetJSON(runKey(id), &run); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns all backed-up runs, most recent first.
func (c *Client) ListRuns() ([]db.Run, error) {
	var runs []db.Run
	err := c.DoReadOnly(func(k *kv.KV) error {
		keys, err := k.Keys()
		if err != nil {
			return err
		}
		for _, key := range filterRunKeys(keys) {
			val, err := k.Get(key)
			if err != nil {
				return err
			}
			run, ok := decodeRun(val)
			if !ok {
				continue
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	sortRunsByStart(runs)
	return runs, nil
}

func filterRunKeys(keys [][]byte) [][]byte {
	prefix := []byte(RunPrefix)
	var out [][]byte
	for _, key := range keys {
		if bytes.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out
}

// decodeRun skips corrupted records instead of failing the whole listing.
func decodeRun(val []byte) (db.Run, bool) {
	var run db.Run
	if err := json.Unmarshal(val, &run); err != nil {
		return db.Run{}, false
	}
	return run, true
}

func sortRunsByStart(runs []db.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
}
