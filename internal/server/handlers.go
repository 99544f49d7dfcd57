package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/receipt-points/internal/models"
	"github.com/mmynk/receipt-points/internal/storage"
	"github.com/mmynk/receipt-points/internal/validator"
)

// Wire messages. The two error bodies are fixed by the external contract
// and must not leak which check failed.
type processResponse struct {
	ID string `json:"id"`
}

type pointsResponse struct {
	Points int64 `json:"points"`
}

type errorResponse struct {
	Description string `json:"description"`
}

const (
	invalidReceiptMsg = "The receipt is invalid."
	notFoundMsg       = "No receipt found for that ID."
	internalErrorMsg  = "Internal server error."
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// handleProcessReceipt handles POST /receipts/process.
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	var raw models.RawReceipt

	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		// Malformed JSON and wrong-typed fields get the same opaque
		// rejection as a failed validation check.
		writeJSON(w, http.StatusBadRequest, errorResponse{Description: invalidReceiptMsg})
		return
	}

	id, err := s.service.ProcessReceipt(r.Context(), raw)
	if err != nil {
		if errors.Is(err, validator.ErrInvalidReceipt) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Description: invalidReceiptMsg})
			return
		}
		slog.Error("ProcessReceipt failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Description: internalErrorMsg})
		return
	}

	writeJSON(w, http.StatusOK, processResponse{ID: id})
}

// handleGetPoints handles GET /receipts/{id}/points.
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	points, err := s.service.GetPoints(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Description: notFoundMsg})
			return
		}
		slog.Error("GetPoints failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Description: internalErrorMsg})
		return
	}

	writeJSON(w, http.StatusOK, pointsResponse{Points: points})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
