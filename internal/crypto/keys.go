package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Keys содержит производные ключи для аутентификации и шифрования ревизий
type Keys struct {
	AuthKey       []byte // ключ для аутентификации на сервере, на сервер уходит только его хеш
	EncryptionKey []byte // ключ шифрования ревизий, никогда не покидает устройство
}

// Параметры Argon2id
const (
	Argon2Time    = 1
	Argon2Memory  = 64 * 1024 // KB
	Argon2Threads = 4
	Argon2KeyLen  = KeySize
	SaltSize      = 32
)

// Контексты деривации, ключи с разными контекстами независимы
const (
	contextAuth    = "caresync/auth"
	contextEncrypt = "caresync/revisions"
)

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 генерирует соль и возвращает ее в Base64
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKeys получает ключи из парольной фразы аккаунта.
// Все устройства аккаунта получают одинаковые ключи и могут читать ревизии друг друга.
func DeriveKeys(passphrase, username string, salt []byte) (*Keys, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	return &Keys{
		AuthKey:       derive(passphrase, username, contextAuth, salt),
		EncryptionKey: derive(passphrase, username, contextEncrypt, salt),
	}, nil
}

func derive(passphrase, username, context string, salt []byte) []byte {
	input := make([]byte, 0, len(passphrase)+len(username)+len(context)+2)
	input = append(input, passphrase...)
	input = append(input, 0)
	input = append(input, username...)
	input = append(input, 0)
	input = append(input, context...)
	return argon2.IDKey(input, salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)
}

// DeriveKeysFromBase64Salt получает ключи из Base64-кодированной соли
func DeriveKeysFromBase64Salt(passphrase, username, saltBase64 string) (*Keys, error) {
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return DeriveKeys(passphrase, username, salt)
}
