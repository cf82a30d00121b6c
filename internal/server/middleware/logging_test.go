package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger пишет JSON записи в buf
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, body: `{"ok":true}`, wantLevel: "INFO"},
		{name: "client error", status: http.StatusConflict, body: `{"error":"conflict"}`, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := LoggingMiddleware(captureLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/revisions/push", nil)
			req.Header.Set("User-Agent", "caresync-test")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())

			entries := logEntries(t, &buf)
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, http.MethodPost, entry["method"])
			assert.Equal(t, "/api/v1/revisions/push", entry["path"])
			assert.Equal(t, "caresync-test", entry["user_agent"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, len(tt.body), entry["bytes_written"])
			assert.Contains(t, entry, "duration_ms")
		})
	}
}

func TestLoggingMiddleware_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingMiddleware(captureLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusOK, entries[0]["status"])
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingMiddleware(captureLogger(&buf), "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/revisions/pull", nil))
	assert.Len(t, logEntries(t, &buf), 1)
}

func TestLoggingMiddleware_MasksSaltUsername(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingMiddleware(captureLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/alice", nil))

	assert.NotContains(t, buf.String(), "alice")
	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/v1/auth/salt/***", entries[0]["path"])
}

// hijackRecorder ResponseRecorder, который умеет Hijack, как настоящий http.response
type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	server, client := net.Pipe()
	_ = client.Close()
	return server, bufio.NewReadWriter(bufio.NewReader(server), bufio.NewWriter(server)), nil
}

func TestLoggingMiddleware_PreservesHijacker(t *testing.T) {
	rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}

	handler := LoggingMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok, "wrapped writer must implement http.Hijacker")
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/revisions/watch", nil))
	assert.True(t, rec.hijacked)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/api/v1/auth/salt/alice", want: "/api/v1/auth/salt/***"},
		{path: "/api/v1/auth/salt/", want: "/api/v1/auth/salt/"},
		{path: "/api/v1/auth/login", want: "/api/v1/auth/login"},
		{path: "/api/v1/revisions/pull", want: "/api/v1/revisions/pull"},
		{path: "/", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizePath(tt.path))
		})
	}
}
