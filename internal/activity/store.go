// Package activity persists a local log of API operations and their
// outcomes, one row per request. It is the durable counterpart of the
// diagnostic log a failed operation always gets: the operator can ask
// "what did I run and what happened" after the fact.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRetention is how long entries are kept before the pruner
// removes them.
const DefaultRetention = 7 * 24 * time.Hour

// pruneInterval is how often the background pruner runs.
const pruneInterval = time.Hour

// Entry is one recorded operation outcome.
type Entry struct {
	ID        int64
	RequestID string
	Op        string
	Method    string
	Path      string
	Status    int
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// Store is a sqlite-backed activity log with retention pruning.
type Store struct {
	db        *sql.DB
	retention time.Duration
	logger    *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

const schema = `
CREATE TABLE IF NOT EXISTS activity (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	op TEXT NOT NULL,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	status INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity(created_at);
`

// Open opens (creating if needed) the activity database at path and
// starts the retention pruner. Retention <= 0 uses DefaultRetention.
func Open(path string, retention time.Duration, logger *slog.Logger) (*Store, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create activity directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open activity database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize activity schema: %w", err)
	}

	s := &Store{
		db:        db,
		retention: retention,
		logger:    logger,
		stop:      make(chan struct{}),
	}

	s.prune()
	s.wg.Add(1)
	go s.pruneLoop()

	return s, nil
}

// pruneLoop removes expired entries periodically until Close.
func (s *Store) pruneLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.prune()
		}
	}
}

// prune deletes entries older than the retention window.
func (s *Store) prune() {
	cutoff := time.Now().UTC().Add(-s.retention)
	res, err := s.db.Exec(`DELETE FROM activity WHERE created_at < ?`, cutoff)
	if err != nil {
		s.logger.Warn("activity prune failed", "error", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Debug("pruned activity entries", "count", n)
	}
}

// Record appends one entry. CreatedAt defaults to now when unset.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (request_id, op, method, path, status, outcome, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Op, e.Method, e.Path, e.Status, e.Outcome, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, op, method, path, status, outcome, detail, created_at
		 FROM activity ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Op, &e.Method, &e.Path, &e.Status, &e.Outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close stops the pruner and closes the database. Safe to call more
// than once.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
	return s.db.Close()
}
