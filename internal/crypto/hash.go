package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidAuthKey хеш auth_key не совпал с сохраненным
var ErrInvalidAuthKey = errors.New("invalid auth key")

// HashAuthKey хеширует auth_key с использованием SHA256, результат в hex.
// auth_key уже получен через Argon2id, поэтому медленный хеш здесь не нужен.
func HashAuthKey(authKey []byte) (string, error) {
	if len(authKey) == 0 {
		return "", fmt.Errorf("auth key cannot be empty")
	}

	hash := sha256.Sum256(authKey)
	return hex.EncodeToString(hash[:]), nil
}

// CompareAuthKeyHash сравнивает сохраненный хеш с присланным клиентом за постоянное время.
// Сервер видит только хеши, сам auth_key до него не доходит.
func CompareAuthKeyHash(stored, presented string) error {
	if stored == "" || presented == "" {
		return ErrInvalidAuthKey
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return ErrInvalidAuthKey
	}
	return nil
}
