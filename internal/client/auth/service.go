package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crypto"
	"github.com/iudanet/caresync/internal/validation"
	pkgapi "github.com/iudanet/caresync/pkg/api"
)

var (
	// ErrNotLoggedIn на устройстве нет сохраненной сессии
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionExpired срок действия access token истек, нужен повторный login
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidPassphrase парольная фраза не расшифровывает сохраненный токен
	ErrInvalidPassphrase = errors.New("invalid passphrase")
)

// Session разблокированная сессия устройства
type Session struct {
	ExpiresAt     time.Time
	Username      string
	UserID        string
	AccessToken   string // JWT access token
	EncryptionKey []byte // ключ шифрования ревизий (НЕ сохраняется!)
}

// service предоставляет функции авторизации
type service struct {
	apiClient APIClient
	authStore *AuthStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, authStore *AuthStore, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		authStore: authStore,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	UserID     string // UUID пользователя
	Username   string // username
	PublicSalt string // public salt (base64)
}

// Register регистрирует нового пользователя
func (s *service) Register(ctx context.Context, username, passphrase string) (*RegisterResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassphrase(passphrase); err != nil {
		return nil, fmt.Errorf("invalid passphrase: %w", err)
	}

	// 1. Генерируем публичную соль
	publicSaltBase64, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// 2. Деривируем ключи из парольной фразы
	keys, err := crypto.DeriveKeysFromBase64Salt(passphrase, username, publicSaltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	// 3. Хешируем auth_key для отправки на сервер
	authKeyHash, err := crypto.HashAuthKey(keys.AuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  publicSaltBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("User registered", "username", username, "user_id", resp.UserID)

	return &RegisterResult{
		UserID:     resp.UserID,
		Username:   username,
		PublicSalt: publicSaltBase64,
	}, nil
}

// Login выполняет аутентификацию пользователя и сохраняет сессию
func (s *service) Login(ctx context.Context, username, passphrase string) (*Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassphrase(passphrase); err != nil {
		return nil, fmt.Errorf("invalid passphrase: %w", err)
	}

	// 1. Получаем public_salt с сервера
	saltResp, err := s.apiClient.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	// 2. Деривируем ключи
	keys, err := crypto.DeriveKeysFromBase64Salt(passphrase, username, saltResp.PublicSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	// 3. Хешируем auth_key
	authKeyHash, err := crypto.HashAuthKey(keys.AuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &Session{
		Username:      username,
		UserID:        resp.UserID,
		AccessToken:   resp.AccessToken,
		EncryptionKey: keys.EncryptionKey,
		ExpiresAt:     s.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	// 4. Сохраняем токен, зашифрованный ключом ревизий
	err = s.authStore.SaveAuth(ctx, &storage.AuthData{
		Username:    session.Username,
		UserID:      session.UserID,
		AccessToken: session.AccessToken,
		PublicSalt:  saltResp.PublicSalt,
		ExpiresAt:   session.ExpiresAt.Unix(),
	}, keys.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("User logged in", "username", username, "expires_at", session.ExpiresAt)
	return session, nil
}

// Unlock восстанавливает сессию, ключи деривируются из сохраненной соли
func (s *service) Unlock(ctx context.Context, passphrase string) (*Session, error) {
	stored, err := s.authStore.GetAuthEncryptData(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	expiresAt := time.Unix(stored.ExpiresAt, 0)
	if !s.now().Before(expiresAt) {
		return nil, ErrSessionExpired
	}

	keys, err := crypto.DeriveKeysFromBase64Salt(passphrase, stored.Username, stored.PublicSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	auth, err := s.authStore.GetAuthDecryptData(ctx, keys.EncryptionKey)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryptionFailed) {
			return nil, ErrInvalidPassphrase
		}
		return nil, err
	}

	return &Session{
		Username:      auth.Username,
		UserID:        auth.UserID,
		AccessToken:   auth.AccessToken,
		EncryptionKey: keys.EncryptionKey,
		ExpiresAt:     expiresAt,
	}, nil
}

func (s *service) Status(ctx context.Context) (*storage.AuthData, error) {
	stored, err := s.authStore.GetAuthEncryptData(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return stored, nil
}

// Logout выполняет выход из системы. Сервер не хранит сессий, поэтому выход локальный.
func (s *service) Logout(ctx context.Context) error {
	if err := s.authStore.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	s.logger.Info("User logged out")
	return nil
}
