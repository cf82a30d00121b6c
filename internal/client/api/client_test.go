package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/pkg/api"
)

var (
	deviceA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	deviceB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nurse", req.Username)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{UserID: "user-123", Message: "Registration successful"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{
		Username:    "nurse",
		AuthKeyHash: "hash123",
		PublicSalt:  "salt123",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
}

// TestClient_Errors проверяет преобразование ответов сервера в HTTPError
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		responseBody   any
		name           string
		expectedErrMsg string
		expectedCode   string
		statusCode     int
	}{
		{
			name:           "user already exists",
			statusCode:     http.StatusConflict,
			responseBody:   api.ErrorResponse{Error: api.ErrorConflict, Message: "user already exists"},
			expectedErrMsg: "server error (409): user already exists",
			expectedCode:   api.ErrorConflict,
		},
		{
			name:           "code without message",
			statusCode:     http.StatusBadRequest,
			responseBody:   api.ErrorResponse{Error: api.ErrorBadRequest},
			expectedErrMsg: "server error (400): bad_request",
			expectedCode:   api.ErrorBadRequest,
		},
		{
			name:           "plain text body",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "request failed with status 500: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{Username: "nurse"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
			assert.True(t, IsStatus(err, tt.statusCode))

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

// TestClient_GetSalt проверяет получение соли и экранирование username
func TestClient_GetSalt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/auth/salt/dr house", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.SaltResponse{PublicSalt: "c2FsdA=="})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).GetSalt(context.Background(), "dr house")
	require.NoError(t, err)
	assert.Equal(t, "c2FsdA==", resp.PublicSalt)
}

// TestClient_Login проверяет аутентификацию
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nurse", req.Username)
		assert.Equal(t, "hash", req.AuthKeyHash)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{AccessToken: "jwt", UserID: "user-1", ExpiresIn: 900})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Login(context.Background(), api.LoginRequest{Username: "nurse", AuthKeyHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, int64(900), resp.ExpiresIn)
}

// TestClient_PullRevisions проверяет wire формат pull
func TestClient_PullRevisions(t *testing.T) {
	since := crdt.NewKnowledgeVector(map[uuid.UUID]int64{deviceA: 3})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/revisions/pull", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var req api.PullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, since.Equal(req.KnowledgeVector))

		_ = json.NewEncoder(w).Encode(api.PullResponse{
			KnowledgeVector: crdt.NewKnowledgeVector(map[uuid.UUID]int64{deviceA: 3, deviceB: 2}),
			Revisions: []api.EncryptedRevision{{
				KnowledgeVector: crdt.NewKnowledgeVector(map[uuid.UUID]int64{deviceB: 2}),
				EncryptedData:   "Y2lwaGVy",
			}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("token-1")

	resp, err := client.PullRevisions(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, resp.Revisions, 1)
	assert.Equal(t, int64(2), resp.Revisions[0].KnowledgeVector.Clock(deviceB))
	assert.Equal(t, "Y2lwaGVy", resp.Revisions[0].EncryptedData)
	assert.Equal(t, int64(2), resp.KnowledgeVector.Clock(deviceB))
}

// TestClient_PushRevisions проверяет push и отказ из-за устаревшего вектора
func TestClient_PushRevisions(t *testing.T) {
	knowledge := crdt.NewKnowledgeVector(map[uuid.UUID]int64{deviceA: 4})
	stale := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/revisions/push", r.URL.Path)

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, deviceA.String(), req.DeviceID)
		assert.True(t, knowledge.Equal(req.DeviceKnowledge))

		if stale {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorStaleKnowledge})
			return
		}
		_ = json.NewEncoder(w).Encode(api.PushResponse{KnowledgeVector: knowledge})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	req := api.PushRequest{DeviceID: deviceA.String(), DeviceKnowledge: knowledge}

	resp, err := client.PushRevisions(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, knowledge.Equal(resp.KnowledgeVector))

	stale = true
	_, err = client.PushRevisions(context.Background(), req)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, api.ErrorStaleKnowledge, httpErr.Code)
}

// TestClient_Health проверяет /health
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Health(context.Background()))
}

// TestClient_ContextCancellation проверяет отмену запроса
func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL).PullRevisions(ctx, crdt.NewKnowledgeVector(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestClient_InvalidJSON проверяет обработку некорректного ответа
func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{invalid json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetSalt(context.Background(), "nurse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

// TestClient_HTTPClientRedirect проверяет перенос Authorization при редиректе
func TestClient_HTTPClientRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer target.Close()

	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+r.URL.Path, http.StatusTemporaryRedirect)
	}))
	defer redirect.Close()

	client := NewClient(redirect.URL)
	client.SetToken("token-1")

	_, err := client.PullRevisions(context.Background(), crdt.NewKnowledgeVector(nil))
	require.NoError(t, err)
}

// TestClient_Watch проверяет получение уведомлений через websocket
func TestClient_Watch(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/revisions/watch", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for i := int64(1); i <= 2; i++ {
			require.NoError(t, conn.WriteJSON(api.Notification{
				Type:            api.NotificationRevisionsAvailable,
				KnowledgeVector: crdt.NewKnowledgeVector(map[uuid.UUID]int64{deviceB: i}),
				Origin:          deviceB.String(),
			}))
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("token-1")

	var got []api.Notification
	err := client.Watch(context.Background(), func(n api.Notification) {
		got = append(got, n)
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, api.NotificationRevisionsAvailable, got[0].Type)
	assert.Equal(t, deviceB.String(), got[1].Origin)
	assert.Equal(t, int64(2), got[1].KnowledgeVector.Clock(deviceB))
}

// TestClient_WatchCancelled проверяет завершение Watch по отмене контекста
func TestClient_WatchCancelled(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// ждем закрытия клиентом
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewClient(server.URL).Watch(ctx, func(api.Notification) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestClient_WatchUnauthorized проверяет отказ при handshake
func TestClient_WatchUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := NewClient(server.URL).Watch(context.Background(), func(api.Notification) {})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}
