package api

import (
	"net/http"

	"pylens/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health check
	s.router.HandleFunc("/health", s.handleHealth)

	// Analysis operations
	s.router.HandleFunc("/analyze/file", s.handleAnalyzeFile) // GET /analyze/file?path=...
	s.router.HandleFunc("/analyze/repo", s.handleAnalyzeRepo) // GET /analyze/repo?path=...

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]interface{}{
		"message": "pylens API is running",
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /analyze/file?path=... - Analyze a single Python file",
			"GET /analyze/repo?path=... - Analyze a repository tree",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
