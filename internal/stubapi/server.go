// Package stubapi is an in-memory storefront backend speaking the wire
// contract the cart client expects: bearer-token auth and the four
// collection-level cart endpoints. It exists for local development and e2e
// tests and keeps no state beyond process memory.
package stubapi

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server around the given store.
func New(addr string, logger *log.Logger, store *Store) *Server {
	router := BuildRouter(logger, store)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
