// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/receipt-points/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite. Unlike the in-memory
// backend, scores survive process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveScore inserts the points for a new id. The primary key on id
// enforces write-once: an insert for an existing id fails instead of
// overwriting.
func (s *SQLiteStore) SaveScore(ctx context.Context, id string, points int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (id, points, created_at) VALUES (?, ?, ?)",
		id, points, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateID, id)
		}
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// GetScore retrieves the points stored for an id.
func (s *SQLiteStore) GetScore(ctx context.Context, id string) (int64, error) {
	var points int64
	err := s.db.QueryRowContext(ctx,
		"SELECT points FROM scores WHERE id = ?",
		id,
	).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get score: %w", err)
	}
	return points, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. modernc.org/sqlite does not export a typed error for this, so
// match on the constraint message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
