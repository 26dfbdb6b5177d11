package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/plexus/internal/field"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound  = errors.New("storage: run not found")
	ErrAmbiguous = errors.New("storage: run id prefix is ambiguous")
)

const DBName = "runs.db"

// Store keeps recorded runs and their per-frame statistics in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the run database inside dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(dir, DBName)

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// every pooled connection would get its own empty database
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }
func (s *Store) Path() string { return s.path }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    preset TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    seed INTEGER NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    frames INTEGER NOT NULL,
    params TEXT NOT NULL DEFAULT '{}',
    metrics TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS frames (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    frame INTEGER NOT NULL,
    points INTEGER NOT NULL,
    links INTEGER NOT NULL,
    pointer_links INTEGER NOT NULL,
    bounces INTEGER NOT NULL,
    mean_speed REAL NOT NULL,
    PRIMARY KEY (run_id, frame)
);
`

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frames    int                `json:"frames"`
	Params    field.Params       `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save stores a run and its frames in one transaction and returns the new
// run id.
func (s *Store) Save(ctx context.Context, meta RunMetadata, frames []field.FrameStats) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)

	params, err := json.Marshal(meta.Params)
	if err != nil {
		return "", fmt.Errorf("encoding params: %w", err)
	}
	metrics, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", fmt.Errorf("encoding metrics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, preset, created_at, seed, width, height, frames, params, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Preset, meta.Timestamp.UTC(), meta.Seed, meta.Width, meta.Height, meta.Frames, string(params), string(metrics))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO frames (run_id, frame, points, links, pointer_links, bounces, mean_speed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.ExecContext(ctx, meta.ID, f.Frame, f.Points, f.Links, f.PointerLinks, f.Bounces, f.MeanSpeed); err != nil {
			return "", fmt.Errorf("inserting frame %d: %w", f.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return meta.ID, nil
}

// List returns every run, newest first.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, preset, created_at, seed, width, height, frames, params, metrics
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

// Load returns the run whose id is, or starts with, runID. The prefix is
// matched literally.
func (s *Store) Load(ctx context.Context, runID string) (*RunMetadata, error) {
	if runID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, preset, created_at, seed, width, height, frames, params, metrics
		 FROM runs WHERE substr(id, 1, length(?1)) = ?1 LIMIT 2`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	defer rows.Close()

	var found []*RunMetadata
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if meta.ID == runID {
			return meta, nil
		}
		found = append(found, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, runID)
	}
}

// LoadFrames returns the frames of a run in order.
func (s *Store) LoadFrames(ctx context.Context, runID string) ([]field.FrameStats, error) {
	meta, err := s.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT frame, points, links, pointer_links, bounces, mean_speed
		 FROM frames WHERE run_id = ? ORDER BY frame`, meta.ID)
	if err != nil {
		return nil, fmt.Errorf("loading frames: %w", err)
	}
	defer rows.Close()

	frames := make([]field.FrameStats, 0, meta.Frames)
	for rows.Next() {
		var f field.FrameStats
		if err := rows.Scan(&f.Frame, &f.Points, &f.Links, &f.PointerLinks, &f.Bounces, &f.MeanSpeed); err != nil {
			return nil, fmt.Errorf("scanning frame: %w", err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

func (s *Store) Delete(ctx context.Context, runID string) error {
	meta, err := s.Load(ctx, runID)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, meta.ID); err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunMetadata, error) {
	var (
		meta    RunMetadata
		params  string
		metrics string
	)
	if err := row.Scan(&meta.ID, &meta.Preset, &meta.Timestamp, &meta.Seed, &meta.Width, &meta.Height, &meta.Frames, &params, &metrics); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &meta.Params); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &meta.Metrics); err != nil {
		return nil, fmt.Errorf("decoding metrics: %w", err)
	}
	return &meta, nil
}
