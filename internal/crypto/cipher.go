package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
)

var (
	// ErrInvalidKey ключ неверной длины
	ErrInvalidKey = errors.New("encryption key must be 32 bytes")
	// ErrDecryptionFailed данные повреждены, ключ неверный или associated data не совпадает
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Cipher AES-256-GCM шифр с фиксированным ключом.
// Формат шифротекста: nonce (12 bytes) + ciphertext + auth_tag (16 bytes).
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher создает шифр для 32-байтового ключа
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Seal шифрует plaintext. aad не шифруется, но проверяется при Open:
// ревизия с подмененным вектором знаний не расшифруется.
func (c *Cipher) Seal(plaintext, aad []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("plaintext cannot be empty")
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal дописывает ciphertext и auth_tag после nonce
	return c.aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open расшифровывает данные, полученные от Seal с тем же aad
func (c *Cipher) Open(encrypted, aad []byte) ([]byte, error) {
	if len(encrypted) < NonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: encrypted data too short", ErrDecryptionFailed)
	}

	plaintext, err := c.aead.Open(nil, encrypted[:NonceSize], encrypted[NonceSize:], aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// SealToBase64 шифрует данные и возвращает результат в Base64
func (c *Cipher) SealToBase64(plaintext, aad []byte) (string, error) {
	encrypted, err := c.Seal(plaintext, aad)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// OpenFromBase64 расшифровывает данные из Base64
func (c *Cipher) OpenFromBase64(encryptedBase64 string, aad []byte) ([]byte, error) {
	encrypted, err := base64.StdEncoding.DecodeString(encryptedBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return c.Open(encrypted, aad)
}

// EncryptToBase64 шифрует данные без associated data, используется для локальных токенов
func EncryptToBase64(plaintext, key []byte) (string, error) {
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}
	return c.SealToBase64(plaintext, nil)
}

// DecryptFromBase64 обратная операция к EncryptToBase64
func DecryptFromBase64(encryptedBase64 string, key []byte) ([]byte, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c.OpenFromBase64(encryptedBase64, nil)
}
