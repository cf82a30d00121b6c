package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/caresync/internal/client/storage"
)

var authKey = []byte("current")

// SaveAuth сохраняет сессию, заменяя предыдущую
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	return s.update(func(tx *bbolt.Tx) error {
		return putJSON(tx, bucketAuth, authKey, auth)
	})
}

// GetAuth возвращает сохраненную сессию или storage.ErrAuthNotFound
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	auth := &storage.AuthData{}
	err := s.view(func(tx *bbolt.Tx) error {
		return getJSON(tx, bucketAuth, authKey, auth, storage.ErrAuthNotFound)
	})
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// DeleteAuth удаляет сессию (logout)
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketAuth)
		if err != nil {
			return err
		}
		if b.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}
		if err := b.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

// IsAuthenticated true, если сессия есть и токен не истек
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return time.Now().Unix() < auth.ExpiresAt, nil
}
