package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkrasnov/workdesk/internal/core/domain"
	"github.com/dkrasnov/workdesk/internal/core/ports"
)

type claimsContextKey struct{}

func claimsFromContext(ctx context.Context) *domain.TokenClaims {
	claims, _ := ctx.Value(claimsContextKey{}).(*domain.TokenClaims)
	return claims
}

// requireAuth verifies the bearer token and stores its claims on the
// request context for downstream handlers.
func requireAuth(tokens ports.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "authorization header is required")
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "bearer token is required")
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireAdmin additionally rejects callers without an admin role.
func requireAdmin(tokens ports.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return requireAuth(tokens, func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || !claims.Role.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
