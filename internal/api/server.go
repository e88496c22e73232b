// Package api exposes the analysis engine over HTTP. It is a thin
// request layer: routing, parameter decoding and error mapping live
// here, all analysis semantics stay in the analyzer package.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pylens/internal/analyzer"
	"pylens/internal/logging"
)

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	logger   *logging.Logger
	engine   *analyzer.Analyzer
	authHash string
}

// Option configures a Server.
type Option func(*Server)

// WithAuthHash enables bearer-token auth against the given bcrypt hash.
func WithAuthHash(hash string) Option {
	return func(s *Server) {
		s.authHash = hash
	}
}

// NewServer creates a new HTTP server instance
func NewServer(addr string, engine *analyzer.Analyzer, logger *logging.Logger, opts ...Option) *Server {
	s := &Server{
		addr:   addr,
		logger: logger,
		engine: engine,
		router: http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	if s.authHash != "" {
		handler = AuthMiddleware(s.authHash)(handler)
	}
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
