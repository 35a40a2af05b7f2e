package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tagrapport/tagrapport/internal/domain"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Success bool               `json:"success"`
	Data    any                `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, status int, data any, message string) {
	s.writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

// respondError maps the error taxonomy onto status codes: validation 400,
// unauthorized 401, not-found 404, everything else 500 with a generic message
// (detail included only in dev mode).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Message: "Validation error",
			Errors:  verr.Fields,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		s.unauthorized(w, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Not found"})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		env := envelope{Success: false, Message: "Internal server error"}
		if s.devMode {
			env.Error = err.Error()
		}
		s.writeJSON(w, http.StatusInternalServerError, env)
	}
}

func (s *Server) unauthorized(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: message})
}

func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads the request body into v, rejecting malformed JSON.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("body", "request body is required")
		}
		return domain.Invalid("body", "invalid JSON")
	}
	return nil
}
