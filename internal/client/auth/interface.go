package auth

import (
	"context"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/pkg/api"
)

//go:generate moq -out service_mock.go . Service
//go:generate moq -out api_mock.go . APIClient

// Service defines the main interface for authentication operations.
// The encryption key is derived from the passphrase on every call and is never stored.
type Service interface {
	// Register регистрирует нового пользователя
	Register(ctx context.Context, username, passphrase string) (*RegisterResult, error)

	// Login выполняет аутентификацию и сохраняет зашифрованный токен локально
	Login(ctx context.Context, username, passphrase string) (*Session, error)

	// Unlock восстанавливает сессию из локального хранилища.
	// Возвращает ErrNotLoggedIn, ErrSessionExpired или ErrInvalidPassphrase.
	Unlock(ctx context.Context, passphrase string) (*Session, error)

	// Status returns stored auth data without decrypting the token
	Status(ctx context.Context) (*storage.AuthData, error)

	// Logout удаляет локальные данные авторизации
	Logout(ctx context.Context) error
}

// APIClient subset of the HTTP client used for authentication
type APIClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	GetSalt(ctx context.Context, username string) (*api.SaltResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
}
