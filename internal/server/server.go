// Package server provides the HTTP transport for the receipt points
// service. It maps the two service operations onto the wire contract:
//
//	POST /receipts/process    -> 200 {"id": "..."} | 400 generic rejection
//	GET  /receipts/{id}/points -> 200 {"points": N} | 404 generic not-found
package server

import (
	"net/http"

	"github.com/mmynk/receipt-points/internal/service"
)

// Server handles HTTP requests for receipts.
type Server struct {
	service *service.ReceiptService
	mux     *http.ServeMux
}

// New creates a Server with its routes registered on a fresh mux.
func New(svc *service.ReceiptService) *Server {
	s := &Server{
		service: svc,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// registerRoutes registers all API routes on the server's mux.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /receipts/process", s.handleProcessReceipt)
	s.mux.HandleFunc("GET /receipts/{id}/points", s.handleGetPoints)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}
