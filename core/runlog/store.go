// Package runlog keeps a history of scheduling runs so a published schedule
// can be traced back to the parameters and input that produced it.
package runlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/confsched/core/scheduler"
)

// RunRecord captures one invocation of the scheduler.
type RunRecord struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Mode      string            `json:"mode"`
	Input     string            `json:"input"`
	Output    string            `json:"output"`
	Params    map[string]any    `json:"params,omitempty"`
	Summary   scheduler.Summary `json:"summary"`
	Error     string            `json:"error,omitempty"`
}

// NewRecord returns a record with a fresh id.
func NewRecord(ts time.Time, mode string) RunRecord {
	return RunRecord{ID: uuid.NewString(), Timestamp: ts.UTC(), Mode: mode}
}

// Query filters records. Zero fields match everything; Limit keeps the most
// recent records.
type Query struct {
	Start time.Time
	End   time.Time
	Mode  string
	Limit int
}

func (q Query) match(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	return q.Mode == "" || r.Mode == q.Mode
}

func (q Query) trim(res []RunRecord) []RunRecord {
	if q.Limit > 0 && len(res) > q.Limit {
		return res[len(res)-q.Limit:]
	}
	return res
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q Query) ([]RunRecord, error)
	Close() error
}

// Config selects the store backend.
type Config struct {
	// Backend is "none", "jsonl" or "sqlite".
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "confsched-runs.db"
		default:
			c.Path = "confsched-runs.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "none", "jsonl", "sqlite":
	default:
		return fmt.Errorf("unknown runlog backend %s", c.Backend)
	}
	if c.Backend != "none" && c.Path == "" {
		return fmt.Errorf("runlog path is required")
	}
	return nil
}

// Open creates the store described by cfg.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "none":
		return NopStore{}, nil
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	}
	return nil, fmt.Errorf("unknown runlog backend %s", cfg.Backend)
}

// NopStore drops records.
type NopStore struct{}

func (NopStore) Append(context.Context, RunRecord) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]RunRecord, error) { return nil, nil }
func (NopStore) Close() error                                      { return nil }
