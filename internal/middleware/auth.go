package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jadeniji/ideaboard-backend/internal/api/httpx"
	"github.com/jadeniji/ideaboard-backend/internal/auth"
)

type ctxKey string

const (
	ctxUserIDKey  ctxKey = "uid"
	ctxRoleKey    ctxKey = "role"
	ctxSessionKey ctxKey = "sid"
)

func UserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(string)
	return v, ok
}

func Role(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRoleKey).(string)
	return v, ok
}

func SessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxSessionKey).(string)
	return v, ok
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Auth requires a Bearer access token and puts the caller's identity on the context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, isRefresh, err := m.TM.ParseAny(token)
		if err != nil || isRefresh {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, ctxRoleKey, claims.Role)
		ctx = context.WithValue(ctx, ctxSessionKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
