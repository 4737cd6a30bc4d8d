package history

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

	"clipbatch/internal/plan"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on schema changes; old databases are rejected.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of the tool.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Run is one recorded batch run.
type Run struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time
	Canceled     bool
	Jobs         int
	ImagesDone   int
	ImagesFailed int
	VideosDone   int
	VideosFailed int
}

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
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
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
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
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// BeginRun records a new run and returns its identifier.
func (s *Store) BeginRun(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (started_at) VALUES (?)",
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// RecordJobs stores the committed job list for a run.
func (s *Store) RecordJobs(ctx context.Context, runID int64, jobs []plan.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin jobs tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, job := range jobs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_jobs (run_id, job_index, source_path, output_path, images, suppressed)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, job.Index, job.SourcePath, job.OutputPath, len(job.Images), boolToInt(job.SuppressVideo),
		)
		if err != nil {
			return fmt.Errorf("insert job %d: %w", job.Index, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "UPDATE runs SET jobs = ? WHERE id = ?", len(jobs), runID); err != nil {
		return fmt.Errorf("update job count: %w", err)
	}
	return tx.Commit()
}

// FinishRun closes out a run with its final counters.
func (s *Store) FinishRun(ctx context.Context, runID int64, canceled bool, imagesDone, imagesFailed, videosDone, videosFailed int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET finished_at = ?, canceled = ?, images_done = ?, images_failed = ?, videos_done = ?, videos_failed = ?
		 WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), boolToInt(canceled),
		imagesDone, imagesFailed, videosDone, videosFailed, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), canceled,
		        jobs, images_done, images_failed, videos_done, videos_failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished string
			canceled int
		)
		if err := rows.Scan(&run.ID, &started, &finished, &canceled,
			&run.Jobs, &run.ImagesDone, &run.ImagesFailed, &run.VideosDone, &run.VideosFailed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Canceled = canceled != 0
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		if finished != "" {
			run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
