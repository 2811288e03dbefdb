// Package cache keeps the last confirmed outline per course in a local
// sqlite database, so the outline can be listed without a network round trip
// and the TUI has something to show while the initial load is in flight.
// Only confirmed states are written: optimistic orders never touch the cache.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jfarrand/syllabus/pkg/models"
)

// ErrNotCached is returned when a course has no cached outline.
var ErrNotCached = errors.New("course not cached")

// Store is the sqlite-backed outline cache.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "outlines.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outlines (
		course_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put stores an outline as the confirmed state of a course.
func (s *Store) Put(courseID string, o models.Outline) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO outlines (course_id, payload, fetched_at)
	VALUES (?, ?, ?)
	`
	_, err = s.db.Exec(query, courseID, payload, time.Now())
	return err
}

// Get returns the cached outline of a course and when it was fetched.
func (s *Store) Get(courseID string) (models.Outline, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time

	row := s.db.QueryRow(`SELECT payload, fetched_at FROM outlines WHERE course_id = ?`, courseID)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Outline{}, time.Time{}, ErrNotCached
		}
		return models.Outline{}, time.Time{}, fmt.Errorf("read cache: %w", err)
	}

	var o models.Outline
	if err := json.Unmarshal(payload, &o); err != nil {
		return models.Outline{}, time.Time{}, fmt.Errorf("decode cached outline: %w", err)
	}
	return o, fetchedAt, nil
}

// Delete drops a course from the cache.
func (s *Store) Delete(courseID string) error {
	_, err := s.db.Exec(`DELETE FROM outlines WHERE course_id = ?`, courseID)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
