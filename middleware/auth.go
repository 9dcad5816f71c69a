// Package middleware holds the request middleware: the bearer-token
// access gate and CORS.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"notekeep/auth"
)

// contextKey is unexported so nothing outside this package can collide
// with the gate's context entries.
type contextKey struct{ name string }

var ownerIDKey = &contextKey{"ownerID"}

// RequireAuth returns middleware that verifies the Authorization bearer
// token and threads the authenticated owner id through the request
// context. Registration and login are mounted outside of it.
func RequireAuth(a *auth.Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "No token provided")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			if tokenStr == header || tokenStr == "" {
				unauthorized(w, "Invalid token format")
				return
			}

			userID, err := a.VerifyToken(tokenStr)
			if err != nil {
				unauthorized(w, "Failed to authenticate token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), userID)))
		})
	}
}

// WithOwnerID returns a context carrying the authenticated owner id.
func WithOwnerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ownerIDKey, id)
}

// OwnerID extracts the owner id attached by RequireAuth.
func OwnerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(ownerIDKey).(string)
	return id, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
