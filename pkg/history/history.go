// Package history keeps a small sqlite log of open-yesterday invocations.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates, if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		note_date TEXT NOT NULL,
		path TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		presented BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_note_date ON invocations(note_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends an entry and fills in its ID. A zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, entry *models.HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
	INSERT INTO invocations (note_date, path, outcome, error, presented, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, entry.Date, entry.Path, string(entry.Outcome), entry.Error, entry.Presented, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read invocation id: %w", err)
	}
	entry.ID = id
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, note_date, path, outcome, COALESCE(error, ''), presented, created_at
	FROM invocations
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var outcome string
		if err := rows.Scan(&e.ID, &e.Date, &e.Path, &outcome, &e.Error, &e.Presented, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		e.Outcome = models.Outcome(outcome)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
