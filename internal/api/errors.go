package api

import (
	"encoding/json"
	"net/http"

	"pylens/internal/analyzer"
)

// ErrorResponse represents an HTTP error response. The body carries
// only the message; the kind of failure is expressed by the status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response to the HTTP response writer
func writeError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, ErrorResponse{Error: message}, status)
}

// writeAnalyzerError writes an analyzer failure with automatic status
// code mapping
func writeAnalyzerError(w http.ResponseWriter, err error) {
	if aerr, ok := err.(*analyzer.Error); ok {
		writeError(w, mapErrorKindToStatus(aerr.Kind), aerr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// mapErrorKindToStatus maps analyzer error kinds to HTTP status codes
func mapErrorKindToStatus(kind analyzer.ErrorKind) int {
	switch kind {
	case analyzer.ErrPathNotFound:
		return http.StatusNotFound // 404
	case analyzer.ErrNotAFile:
		return http.StatusBadRequest // 400
	case analyzer.ErrSyntax:
		return http.StatusUnprocessableEntity // 422
	case analyzer.ErrInternal:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}
