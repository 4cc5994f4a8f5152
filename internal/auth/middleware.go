package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userIDKey = contextKey("userID")

// UserID returns the authenticated user's ID from the request context, or ""
// if the request did not pass through Middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Middleware creates a middleware for protecting routes. It accepts only the
// "Authorization: Bearer <token>" scheme: a missing or malformed header is
// rejected with 401, a token that fails verification with 403. On success the
// user ID is attached to the request context and the chain continues.
func Middleware(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenStr == "" {
				reject(w, http.StatusUnauthorized, "Authentication token is required")
				return
			}

			userID, err := tm.Verify(tokenStr)
			if err != nil {
				log.Warn().Str("path", r.URL.Path).Msg("Rejected invalid auth token")
				reject(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
