package auth

import (
	"context"
	"fmt"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crypto"
)

// AuthStore provides an encryption layer between the auth service and storage.
// It encrypts the access token before saving and decrypts it when retrieving.
type AuthStore struct {
	storage storage.AuthStorage
}

// NewAuthStore creates a new AuthStore
func NewAuthStore(storage storage.AuthStorage) *AuthStore {
	return &AuthStore{
		storage: storage,
	}
}

// SaveAuth шифрует токен ключом encryptionKey и передает копию в хранилище
func (s *AuthStore) SaveAuth(ctx context.Context, auth *storage.AuthData, encryptionKey []byte) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}

	encryptedToken, err := crypto.EncryptToBase64([]byte(auth.AccessToken), encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	authCopy := *auth // копируем структуру, чтобы не менять входящую
	authCopy.AccessToken = encryptedToken

	return s.storage.SaveAuth(ctx, &authCopy)
}

// GetAuthDecryptData загружает данные из storage и расшифровывает токен
func (s *AuthStore) GetAuthDecryptData(ctx context.Context, encryptionKey []byte) (*storage.AuthData, error) {
	storedAuth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	token, err := crypto.DecryptFromBase64(storedAuth.AccessToken, encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}

	auth := *storedAuth
	auth.AccessToken = string(token)
	return &auth, nil
}

// GetAuthEncryptData загружает данные без расшифровки (username, salt, срок действия)
func (s *AuthStore) GetAuthEncryptData(ctx context.Context) (*storage.AuthData, error) {
	storedAuth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}
	auth := *storedAuth
	return &auth, nil
}

// DeleteAuth удаляет данные
func (s *AuthStore) DeleteAuth(ctx context.Context) error {
	return s.storage.DeleteAuth(ctx)
}

// IsAuthenticated проверяет валидность сохраненных данных по сроку действия токена
func (s *AuthStore) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.storage.IsAuthenticated(ctx)
}
