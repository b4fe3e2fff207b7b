// Package httpserver contains HTTP handlers and middleware for the interview
// platform API.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinel errors to HTTP statuses. Internal error
// detail is hidden outside development mode.
func (s *Server) writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
		codeStr = "CONFLICT"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		code = http.StatusServiceUnavailable
		codeStr = "UPSTREAM_TIMEOUT"
	}
	msg := err.Error()
	if codeStr == "INTERNAL" && !s.Cfg.IsDev() {
		msg = "internal error"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: msg, Details: details}})
}

// writeAPINotFound emits the structured 404 used for unmatched /api/* paths.
func writeAPINotFound(w http.ResponseWriter, path string) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{Error: apiError{
		Code:    "NOT_FOUND",
		Message: "no such endpoint",
		Details: map[string]string{"path": path},
	}})
}
