package http

import (
	"net/http"
	"strings"

	"hess-portal-backend/internal/security"
)

// AuthMiddleware validates the bearer token on admin routes and puts the
// admin's user id on the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Message: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Message: err.Error()})
			return
		}
		if !claims.Admin {
			writeJSON(w, http.StatusForbidden, errorResponse{Code: "forbidden", Message: "admin role required"})
			return
		}

		next.ServeHTTP(w, r.WithContext(withAdminID(r.Context(), claims.UserID)))
	})
}
