package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yourorg/shipkeeper/internal/security/audit"
	"github.com/yourorg/shipkeeper/internal/security/auth"
	"github.com/yourorg/shipkeeper/internal/security/ratelimit"
)

type ClaimsContextKey struct{}

// isPublicPath reports whether a request path skips authentication.
// Login has to stay open, as do health, metrics and the websocket feed
// (browser websocket clients cannot set an Authorization header).
func isPublicPath(path string) bool {
	return path == "/api/login" ||
		path == "/healthz" || path == "/readyz" || path == "/metrics" ||
		strings.HasPrefix(path, "/ws/")
}

func JWTMiddleware(tm *auth.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				http.Error(w, `{"error":"invalid auth"}`, http.StatusUnauthorized)
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				log.Debug("token rejected", slog.String("error", err.Error()))
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			userID := ""
			if claims := GetClaimsFromContext(r.Context()); claims != nil {
				userID = claims.UserID
			}

			if !limiter.Allow(userID) {
				log.Warn("rate limit exceeded", slog.String("user_id", userID))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuditMiddleware records mutating API calls before they are handled
func AuditMiddleware(auditLog *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				if strings.HasPrefix(r.URL.Path, "/api/") && r.URL.Path != "/api/login" {
					userID := ""
					if claims := GetClaimsFromContext(r.Context()); claims != nil {
						userID = claims.UserID
					}
					auditLog.LogAction(r.Context(), userID,
						strings.ToLower(r.Method), r.URL.Path, r.PathValue("id"), "initiated", "")
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if c := ctx.Value(ClaimsContextKey{}); c != nil {
		if claims, ok := c.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
