// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/inspektor-hq/inspektor/internal/token"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenVerifier validates access tokens and extracts the identity they carry.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Identity, error)
}

// parseBearerToken extracts the token from an Authorization header of the
// form "Bearer <token>". Returns "" when the header is absent or malformed.
func parseBearerToken(header string) string {
	parts := strings.Fields(strings.TrimSpace(header))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":      false,
		"message": message,
	})
}

// RequireAuth enforces bearer-token authentication.
//
// It parses and verifies the Authorization header and stores the token's
// user id in the request context, so downstream handlers can treat it as
// the authenticated author identity.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := parseBearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				unauthorized(w, "authorization token is missing")
				return
			}

			identity, err := verifier.Verify(tokenString)
			if err != nil {
				unauthorized(w, "token is not valid or has expired")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a context carrying the given user id, as RequireAuth
// would set it. Handlers running outside the middleware chain can use it.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userKey).(int64); ok {
		return id
	}
	return 0
}
