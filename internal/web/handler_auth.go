package web

import (
	"errors"
	"net/http"

	"github.com/tagrapport/tagrapport/internal/domain"
	"github.com/tagrapport/tagrapport/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.auth.Register(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusCreated, result, "Registration successful")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	token, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		s.unauthorized(w, "Invalid credentials")
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"token": token}, "")
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context(), userIDFrom(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, user, "")
}
