// Package validation проверки учетных данных, общие для клиента и сервера.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUsername username не подходит под usernamePattern
	ErrInvalidUsername = errors.New("invalid username")
	// ErrWeakPassphrase парольная фраза аккаунта слишком короткая
	ErrWeakPassphrase = errors.New("weak passphrase")
)

const (
	MinUsernameLen   = 3
	MaxUsernameLen   = 32
	MinPassphraseLen = 12
	MaxPassphraseLen = 1024
)

// латиница, цифры и подчеркивание, чтобы username без экранирования шел в /auth/salt/{username}
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername проверяет длину и алфавит username.
// Username чувствителен к регистру.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidUsername)
	case len(username) < MinUsernameLen:
		return fmt.Errorf("%w: must be at least %d characters long", ErrInvalidUsername, MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidUsername, MaxUsernameLen)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: only letters (a-z, A-Z), numbers (0-9) and underscores (_) are allowed", ErrInvalidUsername)
	}
	return nil
}

// ValidatePassphrase проверяет парольную фразу, из которой выводятся auth_key и ключ шифрования.
// Длина считается в символах, пробелы по краям не учитываются.
func ValidatePassphrase(passphrase string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(passphrase))
	switch {
	case n == 0:
		return fmt.Errorf("%w: passphrase cannot be empty", ErrWeakPassphrase)
	case n < MinPassphraseLen:
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassphrase, MinPassphraseLen)
	case len(passphrase) > MaxPassphraseLen:
		return fmt.Errorf("%w: must not exceed %d bytes", ErrWeakPassphrase, MaxPassphraseLen)
	}
	return nil
}
