package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tableside/api/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate requires a Bearer access token in the Authorization header.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return authenticate(jwtSecret, false)
}

// AuthenticateStream is Authenticate for EventSource endpoints, which cannot
// set headers: a ?token= query parameter is accepted when the header is absent.
func AuthenticateStream(jwtSecret string) func(http.Handler) http.Handler {
	return authenticate(jwtSecret, true)
}

func authenticate(jwtSecret string, allowQuery bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, msg := bearerToken(r, allowQuery)
			if msg != "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, tokenStr)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request, allowQuery bool) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if allowQuery {
			if t := r.URL.Query().Get("token"); t != "" {
				return t, ""
			}
		}
		return "", "missing authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "invalid authorization format"
	}
	return parts[1], ""
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		})
	}
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
