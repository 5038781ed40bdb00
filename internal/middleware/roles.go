package middleware

import (
	"net/http"

	"github.com/jadeniji/ideaboard-backend/internal/api/httpx"
)

// RequireRole gates a route on the role stamped by Auth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := Role(r.Context())
			if !ok || got != role {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
