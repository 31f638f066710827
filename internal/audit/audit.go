// Package audit records tool invocations in SQLite for the status resource
// and post-hoc inspection.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a SQLite connection holding the invocation history.
type Store struct {
	db   *sql.DB
	path string
}

// Invocation is one recorded tool call.
type Invocation struct {
	ID         string
	Tool       string
	Params     string
	Result     string
	Success    bool
	Error      string
	DurationMs int64
	ScriptHash string
	CreatedAt  time.Time
}

// Stats summarizes the invocation history.
type Stats struct {
	Total    int64            `json:"total"`
	Failures int64            `json:"failures"`
	PerTool  map[string]int64 `json:"per_tool"`
}

// Open opens or creates the invocation database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir audit dir: %w", err)
		}
	}
	return open(path + "?_journal_mode=WAL&_busy_timeout=5000")
}

// OpenMemory opens an in-memory store for testing.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	s := &Store{db: db, path: dsn}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS invocations (
			id          TEXT PRIMARY KEY,
			tool        TEXT NOT NULL,
			params      TEXT,
			result      TEXT,
			success     INTEGER NOT NULL,
			error       TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			script_hash TEXT,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
		CREATE INDEX IF NOT EXISTS idx_invocations_created ON invocations(created_at);
	`)
	return err
}

// Record inserts one invocation. A missing ID or timestamp is filled in.
func (s *Store) Record(inv Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO invocations (id, tool, params, result, success, error, duration_ms, script_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Tool, inv.Params, inv.Result, inv.Success, inv.Error,
		inv.DurationMs, inv.ScriptHash, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent invocations, newest first.
func (s *Store) Recent(limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, tool, params, result, success, error, duration_ms, script_hash, created_at
		 FROM invocations ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Params, &inv.Result, &inv.Success,
			&inv.Error, &inv.DurationMs, &inv.ScriptHash, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Stats returns aggregate invocation counts.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{PerTool: map[string]int64{}}

	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) FROM invocations`)
	if err := row.Scan(&st.Total, &st.Failures); err != nil {
		return nil, fmt.Errorf("scan totals: %w", err)
	}

	rows, err := s.db.Query(`SELECT tool, COUNT(*) FROM invocations GROUP BY tool`)
	if err != nil {
		return nil, fmt.Errorf("query per-tool counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tool string
		var n int64
		if err := rows.Scan(&tool, &n); err != nil {
			return nil, fmt.Errorf("scan per-tool count: %w", err)
		}
		st.PerTool[tool] = n
	}
	return st, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
