package middleware

import (
	"net/http"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/models"
)

// RequireAdmin allows only admins (or superusers) through. It must run
// after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		if models.Role(claims.Role) != models.RoleAdmin && !claims.Super {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "admin privileges required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
