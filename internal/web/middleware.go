package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tagrapport/tagrapport/internal/domain"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	userIDKey   contextKey = "userID"
)

// tenant wraps a handler with x-api-token credential resolution. The resolved
// Identity is placed in the request context; resolution failures short-circuit
// with 401.
func (s *Server) tenant(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-api-token")
		if token == "" {
			s.unauthorized(w, "API token is required")
			return
		}

		identity, err := s.auth.ResolveAPIToken(r.Context(), token)
		if errors.Is(err, domain.ErrUnauthorized) {
			s.unauthorized(w, "Invalid API token")
			return
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// identityFrom returns the Identity resolved by the tenant middleware.
func identityFrom(r *http.Request) *domain.Identity {
	identity, _ := r.Context().Value(identityKey).(*domain.Identity)
	return identity
}

// bearer wraps a handler with login-token verification for the /auth/me path.
func (s *Server) bearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.unauthorized(w, "Bearer token is required")
			return
		}

		userID, err := s.auth.VerifyLoginToken(token)
		if err != nil {
			s.unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
