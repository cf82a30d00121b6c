package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caresync/internal/models"
	"github.com/iudanet/caresync/internal/server/storage"
	"github.com/iudanet/caresync/pkg/api"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // username -> User
	createError     error
	getUserError    error
	updateLastLogin func(ctx context.Context, userID string, loginTime time.Time) error
	lastLogins      map[string]time.Time
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{
		users:      make(map[string]*models.User),
		lastLogins: make(map[string]time.Time),
	}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	m.lastLogins[userID] = loginTime
	return nil
}

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestAuthHandler(userStorage storage.UserStorage) *AuthHandler {
	h := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig)
	h.now = func() time.Time { return testNow }
	return h
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userStorage := newMockUserStorage()
	handler := newTestAuthHandler(userStorage)

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "nurse_joy",
		AuthKeyHash: "hash123",
		PublicSalt:  "salt123",
	})
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response api.RegisterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.UserID)

	// Verify user was created in storage
	user, err := userStorage.GetUserByUsername(context.Background(), "nurse_joy")
	require.NoError(t, err)
	assert.Equal(t, response.UserID, user.ID)
	assert.Equal(t, "hash123", user.AuthKeyHash)
	assert.Equal(t, "salt123", user.PublicSalt)
	assert.Equal(t, testNow, user.CreatedAt)
}

func TestAuthHandler_Register_BadRequest(t *testing.T) {
	tests := []struct {
		body   any
		name   string
		errMsg string
	}{
		{name: "invalid json", body: "{not json", errMsg: "invalid request body"},
		{name: "short username", body: api.RegisterRequest{Username: "ab", AuthKeyHash: "h", PublicSalt: "s"}},
		{name: "username with spaces", body: api.RegisterRequest{Username: "nurse joy", AuthKeyHash: "h", PublicSalt: "s"}},
		{name: "missing auth key hash", body: api.RegisterRequest{Username: "nurse_joy", PublicSalt: "s"}, errMsg: "auth_key_hash is required"},
		{name: "missing public salt", body: api.RegisterRequest{Username: "nurse_joy", AuthKeyHash: "h"}, errMsg: "public_salt is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStorage := newMockUserStorage()
			handler := newTestAuthHandler(userStorage)

			w := httptest.NewRecorder()
			handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, api.ErrorBadRequest, resp.Error)
			if tt.errMsg != "" {
				assert.Contains(t, resp.Message, tt.errMsg)
			}
			assert.Empty(t, userStorage.users)
		})
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	userStorage := newMockUserStorage()
	handler := newTestAuthHandler(userStorage)

	body := api.RegisterRequest{Username: "nurse_joy", AuthKeyHash: "hash", PublicSalt: "salt"}

	w := httptest.NewRecorder()
	handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", body))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", body))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, api.ErrorConflict, decodeError(t, w).Error)
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.createError = errors.New("disk full")
	handler := newTestAuthHandler(userStorage)

	w := httptest.NewRecorder()
	handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register",
		api.RegisterRequest{Username: "nurse_joy", AuthKeyHash: "hash", PublicSalt: "salt"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, api.ErrorInternal, resp.Error)
	assert.NotContains(t, resp.Message, "disk full")
}

func saltRequest(username string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/"+username, nil)
	return mux.SetURLVars(req, map[string]string{"username": username})
}

func TestAuthHandler_GetSalt(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.users["nurse_joy"] = &models.User{ID: "user-1", Username: "nurse_joy", PublicSalt: "c2FsdA=="}

	tests := []struct {
		name     string
		username string
		wantSalt string
		wantCode string
		status   int
	}{
		{name: "existing user", username: "nurse_joy", status: http.StatusOK, wantSalt: "c2FsdA=="},
		{name: "unknown user", username: "dr_house", status: http.StatusNotFound, wantCode: api.ErrorNotFound},
		{name: "empty username", username: "", status: http.StatusBadRequest, wantCode: api.ErrorBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAuthHandler(userStorage)

			w := httptest.NewRecorder()
			handler.GetSalt(w, saltRequest(tt.username))

			assert.Equal(t, tt.status, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w).Error)
				return
			}
			var resp api.SaltResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantSalt, resp.PublicSalt)
		})
	}
}

func TestAuthHandler_GetSalt_DBError(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.getUserError = errors.New("database locked")
	handler := newTestAuthHandler(userStorage)

	w := httptest.NewRecorder()
	handler.GetSalt(w, saltRequest("nurse_joy"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.users["nurse_joy"] = &models.User{ID: "user-1", Username: "nurse_joy", AuthKeyHash: "correct_hash"}
	handler := newTestAuthHandler(userStorage)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login",
		api.LoginRequest{Username: "nurse_joy", AuthKeyHash: "correct_hash"}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "nurse_joy", claims.Username)

	assert.Equal(t, testNow, userStorage.lastLogins["user-1"])
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	tests := []struct {
		body     any
		name     string
		wantCode string
		status   int
	}{
		{name: "invalid json", body: "[]", status: http.StatusBadRequest, wantCode: api.ErrorBadRequest},
		{name: "missing hash", body: api.LoginRequest{Username: "nurse_joy"}, status: http.StatusBadRequest, wantCode: api.ErrorBadRequest},
		{name: "unknown user", body: api.LoginRequest{Username: "dr_house", AuthKeyHash: "x"}, status: http.StatusUnauthorized, wantCode: api.ErrorUnauthorized},
		{name: "wrong hash", body: api.LoginRequest{Username: "nurse_joy", AuthKeyHash: "wrong_hash"}, status: http.StatusUnauthorized, wantCode: api.ErrorUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStorage := newMockUserStorage()
			userStorage.users["nurse_joy"] = &models.User{ID: "user-1", Username: "nurse_joy", AuthKeyHash: "correct_hash"}
			handler := newTestAuthHandler(userStorage)

			w := httptest.NewRecorder()
			handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", tt.body))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error)
			assert.Empty(t, userStorage.lastLogins)
		})
	}
}

func TestAuthHandler_Login_UpdateLastLoginError(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.users["nurse_joy"] = &models.User{ID: "user-1", Username: "nurse_joy", AuthKeyHash: "correct_hash"}
	userStorage.updateLastLogin = func(ctx context.Context, userID string, loginTime time.Time) error {
		return errors.New("database locked")
	}
	handler := newTestAuthHandler(userStorage)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login",
		api.LoginRequest{Username: "nurse_joy", AuthKeyHash: "correct_hash"}))

	// не критично для входа
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_StorageCalls(t *testing.T) {
	user := &models.User{ID: "user-7", Username: "nurse_joy", AuthKeyHash: "correct_hash"}
	userStorage := &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return user, nil
		},
		UpdateLastLoginFunc: func(ctx context.Context, userID string, lastLogin time.Time) error {
			return nil
		},
	}
	handler := newTestAuthHandler(userStorage)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login",
		api.LoginRequest{Username: "nurse_joy", AuthKeyHash: "correct_hash"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	claims, err := ValidateAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)

	require.Len(t, userStorage.GetUserByUsernameCalls(), 1)
	assert.Equal(t, "nurse_joy", userStorage.GetUserByUsernameCalls()[0].Username)
	require.Len(t, userStorage.UpdateLastLoginCalls(), 1)
	assert.Equal(t, "user-7", userStorage.UpdateLastLoginCalls()[0].UserID)
	assert.Equal(t, testNow, userStorage.UpdateLastLoginCalls()[0].LastLogin)
	assert.Empty(t, userStorage.CreateUserCalls())
}
