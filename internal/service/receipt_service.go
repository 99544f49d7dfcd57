// Package service orchestrates receipt validation, scoring, and score
// persistence. It exposes the two operations the transport layer needs:
// ProcessReceipt and GetPoints.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/receipt-points/internal/models"
	"github.com/mmynk/receipt-points/internal/scorer"
	"github.com/mmynk/receipt-points/internal/storage"
	"github.com/mmynk/receipt-points/internal/validator"
)

// IDGenerator produces unique opaque identifiers for accepted receipts.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random 128-bit ids in canonical UUID form,
// collision-free for the life of the process.
type UUIDGenerator struct{}

// Generate returns a fresh random id.
func (UUIDGenerator) Generate() string {
	return uuid.New().String()
}

// ReceiptService validates, scores, and stores submitted receipts.
type ReceiptService struct {
	store storage.Store
	idGen IDGenerator
}

// NewReceiptService creates a ReceiptService with the default UUID id source.
func NewReceiptService(store storage.Store) *ReceiptService {
	return NewReceiptServiceWithDeps(store, UUIDGenerator{})
}

// NewReceiptServiceWithDeps creates a ReceiptService with a custom id
// source for testing.
func NewReceiptServiceWithDeps(store storage.Store, idGen IDGenerator) *ReceiptService {
	return &ReceiptService{store: store, idGen: idGen}
}

// ProcessReceipt validates and scores a raw receipt, persists the result
// under a fresh id, and returns the id. A validation failure returns an
// error wrapping validator.ErrInvalidReceipt; the id only becomes visible
// to GetPoints after the score has been fully written.
func (s *ReceiptService) ProcessReceipt(ctx context.Context, raw models.RawReceipt) (string, error) {
	receipt, err := validator.Validate(raw)
	if err != nil {
		slog.Debug("receipt rejected", "error", err)
		return "", err
	}

	points := scorer.Score(receipt)
	id := s.idGen.Generate()

	if err := s.store.SaveScore(ctx, id, points); err != nil {
		slog.Error("failed to save score", "id", id, "error", err)
		return "", fmt.Errorf("saving score: %w", err)
	}

	slog.Info("receipt processed",
		"id", id,
		"retailer", receipt.Retailer,
		"items", len(receipt.Items),
		"points", points,
	)
	return id, nil
}

// GetPoints looks up the points for a previously issued id. Unknown and
// malformed ids are treated identically: storage.ErrNotFound.
func (s *ReceiptService) GetPoints(ctx context.Context, id string) (int64, error) {
	points, err := s.store.GetScore(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, err
		}
		slog.Error("failed to get score", "id", id, "error", err)
		return 0, fmt.Errorf("getting score: %w", err)
	}
	return points, nil
}
