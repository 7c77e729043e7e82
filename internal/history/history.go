// Package history records finished conversion jobs in a local SQLite
// database so past runs can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"
)

// Job statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Job is one recorded conversion run.
type Job struct {
	ID          int64     `json:"id" yaml:"id"`
	Tool        string    `json:"tool" yaml:"tool"`
	InputPath   string    `json:"input_path" yaml:"input_path"`
	InputBytes  int64     `json:"input_bytes" yaml:"input_bytes"`
	OutputPath  string    `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	OutputBytes int64     `json:"output_bytes,omitempty" yaml:"output_bytes,omitempty"`
	Status      string    `json:"status" yaml:"status"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
}

// Store manages the job history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "lovepdf", "history.db"), nil
}

// Open opens or creates the history database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		input_path TEXT NOT NULL,
		input_bytes INTEGER NOT NULL DEFAULT 0,
		output_path TEXT,
		output_bytes INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0
	)`)
	return err
}

// Record inserts one job and returns its row id.
func (s *Store) Record(ctx context.Context, job Job) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (tool, input_path, input_bytes, output_path, output_bytes, status, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Tool, job.InputPath, job.InputBytes, job.OutputPath, job.OutputBytes,
		job.Status, job.Error, job.StartedAt.UTC().Format(time.RFC3339Nano), job.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to record job: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent jobs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, input_path, input_bytes, output_path, output_bytes, status, error, started_at, duration_ms
		 FROM jobs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			job        Job
			outputPath sql.NullString
			errMsg     sql.NullString
			startedAt  string
		)
		if err := rows.Scan(&job.ID, &job.Tool, &job.InputPath, &job.InputBytes,
			&outputPath, &job.OutputBytes, &job.Status, &errMsg, &startedAt, &job.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.OutputPath = outputPath.String
		job.Error = errMsg.String
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			job.StartedAt = t
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Export writes all recorded jobs to path as YAML or JSON, chosen by the
// file extension.
func (s *Store) Export(ctx context.Context, path string) error {
	jobs, err := s.List(ctx, 1<<31-1)
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(jobs)
	case ".json":
		data, err = json.MarshalIndent(jobs, "", "  ")
	default:
		return fmt.Errorf("unsupported export format: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
