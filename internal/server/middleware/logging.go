package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
)

// LoggingMiddleware создает middleware для логирования HTTP запросов.
// Логирует метод, путь, статус, время выполнения и размер ответа,
// но не заголовки и тела: в них токены и зашифрованные записи.
// Запросы к skipPaths не логируются.
func LoggingMiddleware(logger *slog.Logger, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			// httpsnoop сохраняет http.Hijacker и http.Flusher, без них не работает websocket
			m := httpsnoop.CaptureMetrics(next, w, r)

			level := slog.LevelInfo
			switch {
			case m.Code >= 500:
				level = slog.LevelError
			case m.Code >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "HTTP request",
				"method", r.Method,
				"path", sanitizePath(r.URL.Path),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status", m.Code,
				"duration_ms", m.Duration.Milliseconds(),
				"bytes_written", m.Written,
			)
		})
	}
}

// sanitizePath скрывает username в /auth/salt/{username}
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "salt" && i+1 < len(parts) && parts[i+1] != "" {
			parts[i+1] = "***"
		}
	}
	return strings.Join(parts, "/")
}
