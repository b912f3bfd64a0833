package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hireloop/hireloop-api/internal/auth"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireUser resolves the bearer credential to a user and injects the
// identity into the request context. Handlers behind it can assume a
// non-empty user id.
func RequireUser(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(authorizationHeader))
			if raw == "" {
				unauthorized(w, "Missing Authorization header")
				return
			}
			if !strings.HasPrefix(raw, bearerPrefix) {
				unauthorized(w, "Invalid Authorization header")
				return
			}

			claims, err := m.Verify(strings.TrimPrefix(raw, bearerPrefix))
			if err != nil {
				unauthorized(w, "Invalid bearer token")
				return
			}

			ctx := auth.WithIdentity(r.Context(), claims.Subject, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
