package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/caresync/internal/server/handlers"
	"github.com/iudanet/caresync/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				writeError(w, api.ErrorUnauthorized, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				// сам заголовок не логируем, в нем может быть токен
				logger.Warn("Invalid Authorization header format", "path", r.URL.Path)
				writeError(w, api.ErrorUnauthorized, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				writeError(w, api.ErrorUnauthorized, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID, "username", claims.Username)

			ctx := handlers.WithUser(r.Context(), claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
