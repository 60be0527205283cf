package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"noteful-server/pkg/response"
	"noteful-server/pkg/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth is the gate in front of every protected endpoint: it verifies the
// bearer token and binds the embedded identity snapshot to the request
// context. No handler behind it ever runs without a resolved identity.
func Auth(tokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := token.Validate(parts[1], tokenSecret)
			if err != nil {
				response.Unauthorized(w, reason(err))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "token expired"
	case errors.Is(err, token.ErrMalformed):
		return "malformed token"
	default:
		return "invalid token"
	}
}

// GetIdentity returns the identity snapshot bound by Auth, or false when the
// request never passed the gate.
func GetIdentity(r *http.Request) (token.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(token.Identity)
	return identity, ok
}

func GetUserID(r *http.Request) string {
	identity, ok := GetIdentity(r)
	if !ok {
		return ""
	}
	return identity.ID
}
