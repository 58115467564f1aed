package http

import (
	"context"
	"net/http"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stores its claims on the
// request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, http.StatusUnauthorized, security.ErrWrongTokenType.Error())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff guards fleet operations: confirm/activate/complete rentals
// and catalog changes.
func RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil || claims.Role != string(domain.CustomerRoleStaff) {
			writeError(w, http.StatusForbidden, "staff role required")
			return
		}
		next(w, r)
	}
}

func claimsFrom(r *http.Request) *security.CustomerClaims {
	claims, _ := r.Context().Value(claimsKey).(*security.CustomerClaims)
	return claims
}

func isStaff(r *http.Request) bool {
	claims := claimsFrom(r)
	return claims != nil && claims.Role == string(domain.CustomerRoleStaff)
}
