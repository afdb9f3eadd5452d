package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on schema changes; a mismatched database must be
// deleted (the journal is a log, not authoritative state).
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by a different
// sweeper version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Run is one journal row. Outcome holds the sweep package's outcome string.
type Run struct {
	ID             string
	Root           string
	Outcome        string
	DirsTotal      int64
	DirsCompleted  int64
	DirsStalled    int64
	FilesTotal     int64
	FilesDeleted   int64
	FileFailures   int64
	Workers        int
	ScanDuration   time.Duration
	DeleteDuration time.Duration
	StartedAt      time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Record inserts one completed run.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, root, outcome,
            dirs_total, dirs_completed, dirs_stalled,
            files_total, files_deleted, file_failures,
            workers, scan_duration_ms, delete_duration_ms, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Outcome,
		run.DirsTotal, run.DirsCompleted, run.DirsStalled,
		run.FilesTotal, run.FilesDeleted, run.FileFailures,
		run.Workers,
		run.ScanDuration.Milliseconds(),
		run.DeleteDuration.Milliseconds(),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, outcome,
                dirs_total, dirs_completed, dirs_stalled,
                files_total, files_deleted, file_failures,
                workers, scan_duration_ms, delete_duration_ms, started_at
           FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var scanMS, deleteMS int64
		var startedAt string
		if err := rows.Scan(
			&run.ID, &run.Root, &run.Outcome,
			&run.DirsTotal, &run.DirsCompleted, &run.DirsStalled,
			&run.FilesTotal, &run.FilesDeleted, &run.FileFailures,
			&run.Workers, &scanMS, &deleteMS, &startedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.ScanDuration = time.Duration(scanMS) * time.Millisecond
		run.DeleteDuration = time.Duration(deleteMS) * time.Millisecond
		if ts, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			run.StartedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
