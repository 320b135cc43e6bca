// Package auth resolves bearer tokens to user ids. Tokens are a static map
// from the AUTH_TOKENS environment variable ("token1:alice,token2:bob").
// With no AUTH_TOKENS every request passes anonymously, which keeps local
// development friction-free.
package auth

import (
	"context"
	"net/http"
	"os"
	"strings"
)

type contextKey struct{}

// Authenticate wraps a handler with bearer-token resolution. On a valid
// token the resolved user id is placed in the request context; handlers
// read it with UserID and prefer it over any client-supplied user_id.
// OPTIONS preflights pass through so CORS keeps working.
func Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens := parseTokenMap(os.Getenv("AUTH_TOKENS"))
		if len(tokens) == 0 || r.Method == "OPTIONS" {
			next(w, r)
			return
		}

		token := bearerToken(r)
		user, ok := tokens[token]
		if token == "" || !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, user)
		next(w, r.WithContext(ctx))
	}
}

// UserID returns the authenticated user id, or "" when running open.
func UserID(r *http.Request) string {
	if user, ok := r.Context().Value(contextKey{}).(string); ok {
		return user
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// X-API-Key accepted as a fallback for simple clients.
	return r.Header.Get("X-API-Key")
}

// parseTokenMap parses "token1:alice,token2:bob". Malformed entries are
// skipped rather than locking everyone out.
func parseTokenMap(raw string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		tokens[parts[0]] = parts[1]
	}
	return tokens
}
