package auth

import (
	"context"
	"net/http"
)

type contextKey string

// UserIDKey holds the authenticated user ID in the request context
// (set only by the JWT authenticator).
const UserIDKey contextKey = "userID"

// Middleware runs the authenticator before handler dispatch. A failed
// check ends the request with a uniform 401; handlers are never reached.
func Middleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts the authenticated user ID from the context.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
