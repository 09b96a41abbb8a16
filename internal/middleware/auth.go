package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/utils"
)

type contextKey string

// ClaimsContextKey holds the verified JWT claims of the acting user
const ClaimsContextKey contextKey = "claims"

// Auth verifies the Bearer token and lifts its claims into the request
// context
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				deny(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				deny(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the verified claims from the request context, or nil
func Claims(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(ClaimsContextKey).(jwt.MapClaims)
	return claims
}

// UserID returns the acting user's id claim
func UserID(ctx context.Context) string {
	if claims := Claims(ctx); claims != nil {
		if id, ok := claims["id"].(string); ok {
			return id
		}
	}
	return ""
}

// CompanyID returns the acting user's tenant id claim
func CompanyID(ctx context.Context) uint {
	if claims := Claims(ctx); claims != nil {
		if id, ok := claims["company_id"].(float64); ok {
			return uint(id)
		}
	}
	return 0
}

// Role returns the acting user's role claim
func Role(ctx context.Context) string {
	if claims := Claims(ctx); claims != nil {
		if role, ok := claims["role"].(string); ok {
			return role
		}
	}
	return ""
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
