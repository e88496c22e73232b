package api

import (
	"net/http"
	"time"

	"pylens/internal/analyzer"
	"pylens/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	WriteJSON(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}, http.StatusOK)
}

// handleAnalyzeFile handles GET /analyze/file?path=...
func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	result, err := s.engine.AnalyzeFile(r.Context(), path)
	if err != nil {
		s.logger.Warn("File analysis failed", map[string]interface{}{
			"path":      path,
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
		writeAnalyzerError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

// handleAnalyzeRepo handles GET /analyze/repo?path=...
func (s *Server) handleAnalyzeRepo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	result, err := s.engine.AnalyzeRepository(r.Context(), path, analyzer.ScanOptions{})
	if err != nil {
		s.logger.Warn("Repository analysis failed", map[string]interface{}{
			"path":      path,
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
		writeAnalyzerError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}
