// Package memory provides an in-memory implementation of the storage.Store
// interface backed by buntdb. Scores live for the lifetime of the process.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/buntdb"

	"github.com/mmynk/receipt-points/internal/storage"
)

const keyPrefix = "score:"

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store using an in-memory buntdb database.
// buntdb serializes writers, which gives the write-once guarantee without
// any locking in the service layer.
type MemoryStore struct {
	db *buntdb.DB
}

// New creates an in-memory score store.
func New() (*MemoryStore, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory db: %w", err)
	}
	return &MemoryStore{db: db}, nil
}

// Close closes the underlying database.
func (s *MemoryStore) Close() error {
	return s.db.Close()
}

// SaveScore inserts the points for a new id. The existence check and the
// insert happen in a single update transaction, so a duplicate id can
// never overwrite an earlier score.
func (s *MemoryStore) SaveScore(ctx context.Context, id string, points int64) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Get(keyPrefix + id)
		if err == nil {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateID, id)
		}
		if !errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("failed to check for existing score: %w", err)
		}
		if _, _, err := tx.Set(keyPrefix+id, strconv.FormatInt(points, 10), nil); err != nil {
			return fmt.Errorf("failed to save score: %w", err)
		}
		return nil
	})
}

// GetScore looks up the points stored for an id.
func (s *MemoryStore) GetScore(ctx context.Context, id string) (int64, error) {
	var points int64
	err := s.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(keyPrefix + id)
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get score: %w", err)
		}
		points, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt score value %q: %w", value, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}
