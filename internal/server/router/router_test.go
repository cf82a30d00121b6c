package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/caresync/internal/client/api"
	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/server/handlers"
	"github.com/iudanet/caresync/internal/server/middleware"
	"github.com/iudanet/caresync/internal/server/notify"
	"github.com/iudanet/caresync/internal/server/storage/sqlite"
	"github.com/iudanet/caresync/pkg/api"
)

type testServer struct {
	*httptest.Server
	hub *notify.Hub
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	hub := notify.NewHub(logger)
	srv := httptest.NewServer(New(Config{
		Logger:      logger,
		Storage:     st,
		Notifier:    hub,
		RateLimiter: limiter,
		Version:     "test",
		JWT: handlers.JWTConfig{
			Secret:         []byte("router-test-secret"),
			AccessTokenTTL: time.Minute,
		},
	}))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, hub: hub}
}

// login регистрирует пользователя и возвращает клиент с токеном
func login(t *testing.T, ctx context.Context, baseURL, username string) (*clientapi.Client, string) {
	t.Helper()
	client := clientapi.NewClient(baseURL)

	reg, err := client.Register(ctx, api.RegisterRequest{
		Username:    username,
		AuthKeyHash: "a3f1c2",
		PublicSalt:  "c2FsdA==",
	})
	require.NoError(t, err)

	salt, err := client.GetSalt(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, "c2FsdA==", salt.PublicSalt)

	token, err := client.Login(ctx, api.LoginRequest{Username: username, AuthKeyHash: "a3f1c2"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, token.UserID)

	client.SetToken(token.AccessToken)
	return client, token.UserID
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil)

	require.NoError(t, clientapi.NewClient(srv.URL).Health(context.Background()))
}

func TestRouter_PushPull(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil)
	client, _ := login(t, ctx, srv.URL, "alice")

	device := uuid.New()
	kv := crdt.NewKnowledgeVector(map[uuid.UUID]int64{device: 2})

	pushed, err := client.PushRevisions(ctx, api.PushRequest{
		DeviceID:        device.String(),
		DeviceKnowledge: kv,
		Revisions: []api.EncryptedRevision{
			{KnowledgeVector: crdt.NewKnowledgeVector(map[uuid.UUID]int64{device: 1}), EncryptedData: "Zmlyc3Q="},
		},
	})
	require.NoError(t, err)
	assert.True(t, pushed.KnowledgeVector.Equal(kv))

	pulled, err := client.PullRevisions(ctx, crdt.NewKnowledgeVector(nil))
	require.NoError(t, err)
	require.Len(t, pulled.Revisions, 1)
	assert.Equal(t, "Zmlyc3Q=", pulled.Revisions[0].EncryptedData)
	assert.True(t, pulled.KnowledgeVector.Equal(kv))

	// вектор устройства не превосходит штамп последней ревизии {d:1}
	stale := crdt.NewKnowledgeVector(map[uuid.UUID]int64{device: 1})
	_, err = client.PushRevisions(ctx, api.PushRequest{
		DeviceID:        device.String(),
		DeviceKnowledge: stale,
		Revisions:       []api.EncryptedRevision{{KnowledgeVector: stale, EncryptedData: "c2Vjb25k"}},
	})
	assertStale(t, err)

	// {d:2} строго больше последнего штампа, push принимается
	_, err = client.PushRevisions(ctx, api.PushRequest{
		DeviceID:        device.String(),
		DeviceKnowledge: kv,
		Revisions:       []api.EncryptedRevision{{KnowledgeVector: kv, EncryptedData: "dGhpcmQ="}},
	})
	require.NoError(t, err)

	// теперь последний штамп {d:2}, тот же вектор устарел
	_, err = client.PushRevisions(ctx, api.PushRequest{
		DeviceID:        device.String(),
		DeviceKnowledge: kv,
		Revisions:       []api.EncryptedRevision{{KnowledgeVector: kv, EncryptedData: "Zm91cnRo"}},
	})
	assertStale(t, err)

	pulled, err = client.PullRevisions(ctx, crdt.NewKnowledgeVector(nil))
	require.NoError(t, err)
	require.Len(t, pulled.Revisions, 2)
	assert.Equal(t, "dGhpcmQ=", pulled.Revisions[1].EncryptedData)
}

func assertStale(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, clientapi.IsStatus(err, http.StatusConflict))

	var httpErr *clientapi.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, api.ErrorStaleKnowledge, httpErr.Code)
}

func TestRouter_RevisionsRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)

	_, err := clientapi.NewClient(srv.URL).PullRevisions(context.Background(), crdt.NewKnowledgeVector(nil))
	require.Error(t, err)
	assert.True(t, clientapi.IsStatus(err, http.StatusUnauthorized))
}

func TestRouter_Watch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := newTestServer(t, nil)
	client, userID := login(t, ctx, srv.URL, "alice")

	received := make(chan api.Notification, 1)
	watchDone := make(chan error, 1)
	go func() {
		watchDone <- client.Watch(ctx, func(n api.Notification) { received <- n })
	}()

	require.Eventually(t, func() bool { return srv.hub.Subscribers(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	device := uuid.New()
	kv := crdt.NewKnowledgeVector(map[uuid.UUID]int64{device: 1})
	_, err := client.PushRevisions(ctx, api.PushRequest{
		DeviceID:        device.String(),
		DeviceKnowledge: kv,
		Revisions:       []api.EncryptedRevision{{KnowledgeVector: kv, EncryptedData: "ZGF0YQ=="}},
	})
	require.NoError(t, err)

	select {
	case n := <-received:
		assert.Equal(t, api.NotificationRevisionsAvailable, n.Type)
		assert.Equal(t, device.String(), n.Origin)
		assert.True(t, n.KnowledgeVector.Equal(kv))
	case <-ctx.Done():
		t.Fatal("notification not received")
	}

	cancel()
	assert.ErrorIs(t, <-watchDone, context.Canceled)
}

func TestRouter_AuthRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(limiter.Stop)

	srv := newTestServer(t, limiter)
	client := clientapi.NewClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.GetSalt(ctx, "nobody")
		assert.True(t, clientapi.IsStatus(err, http.StatusNotFound))
	}

	_, err := client.GetSalt(ctx, "nobody")
	assert.True(t, clientapi.IsStatus(err, http.StatusTooManyRequests))

	// лимит только на /auth
	require.NoError(t, client.Health(ctx))
}

func TestRouter_UnknownRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/nothing", wantStatus: http.StatusNotFound},
		{name: "unknown auth path", method: http.MethodPost, path: "/api/v1/auth/logout", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/auth/login", wantStatus: http.StatusMethodNotAllowed},
		{name: "wrong method on revisions", method: http.MethodGet, path: "/api/v1/revisions/push", wantStatus: http.StatusMethodNotAllowed},
		{name: "wrong method on health", method: http.MethodPost, path: "/health", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
