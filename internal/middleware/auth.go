// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"blogapi/internal/auth"
	"blogapi/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// identityKey is the context key for the authenticated identity.
const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	Role        models.Role
}

// IdentityFromCtx returns the authenticated identity, or nil when the
// request is anonymous.
func IdentityFromCtx(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// RequireAuth rejects requests without a valid bearer token and attaches
// the token's identity to the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(r, tokens)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches an identity when a valid bearer token is present
// but lets anonymous and invalid-token requests through unauthenticated.
// Used where guests are allowed and a login only enriches the request.
func OptionalAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := bearerClaims(r, tokens); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose identity does not carry one of the
// allowed roles. The role check runs first: an anonymous request fails it
// with "insufficient permissions" rather than a login prompt, since an
// absent identity carries no role. Must be applied after RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromCtx(r.Context())

			var role models.Role
			if identity != nil {
				role = identity.Role
			}
			allowed := false
			for _, want := range roles {
				if role == want {
					allowed = true
					break
				}
			}
			if !allowed {
				writeError(w, http.StatusUnauthorized, "insufficient permissions")
				return
			}
			if identity == nil {
				writeError(w, http.StatusUnauthorized, "please log in")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var errNoToken = errors.New("no bearer token")

// bearerClaims extracts and verifies the Authorization header.
func bearerClaims(r *http.Request, tokens *auth.TokenService) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errNoToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errNoToken
	}
	return tokens.Verify(parts[1])
}

func withIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey, &Identity{
		ID:          claims.UserID,
		Username:    claims.Username,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        models.Role(claims.Role),
	})
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		writeError(w, http.StatusUnauthorized, "please log in")
	}
}

// writeError emits the same response envelope the handlers use. Kept local
// so the middleware package does not depend on the handlers package.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"code":    status,
	})
}
