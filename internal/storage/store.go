// Package storage provides abstractions for score persistence.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no score exists for the given id.
var ErrNotFound = errors.New("score not found")

// ErrDuplicateID is returned when a score already exists for the given id.
// Ids are generated fresh per submission, so hitting this indicates a bug
// or a collision in the id source.
var ErrDuplicateID = errors.New("duplicate score id")

// Store defines the interface for score storage operations.
// This abstraction allows swapping storage backends (in-memory, SQLite)
// without changing the service layer.
//
// The mapping id -> points is write-once: SaveScore never overwrites, and
// an id becomes visible to GetScore only after its SaveScore has returned.
type Store interface {
	// SaveScore persists the points for a freshly generated id.
	// Returns ErrDuplicateID if the id is already present.
	SaveScore(ctx context.Context, id string, points int64) error

	// GetScore retrieves the points stored for an id.
	// Returns ErrNotFound if the id is unknown.
	GetScore(ctx context.Context, id string) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
