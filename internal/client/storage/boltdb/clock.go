package boltdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crdt"
)

var processIDKey = []byte("process_id")

// InitClock stores the process UUID and the initial knowledge vector
func (s *Storage) InitClock(ctx context.Context, processID uuid.UUID, knowledge crdt.KnowledgeVector) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketClock)
		if err != nil {
			return err
		}
		if err := b.Put(processIDKey, processID[:]); err != nil {
			return fmt.Errorf("failed to save process id: %w", err)
		}
		return putJSON(tx, bucketClock, knowledgeKey, knowledge)
	})
}

// GetProcessID returns the process UUID of this store
func (s *Storage) GetProcessID(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketClock)
		if err != nil {
			return err
		}

		data := b.Get(processIDKey)
		if data == nil {
			return storage.ErrClockNotFound
		}

		parsed, err := uuid.FromBytes(data)
		if err != nil {
			return fmt.Errorf("invalid process id: %w", err)
		}
		id = parsed
		return nil
	})

	return id, err
}

// GetKnowledge returns the persisted knowledge vector
func (s *Storage) GetKnowledge(ctx context.Context) (crdt.KnowledgeVector, error) {
	var kv crdt.KnowledgeVector
	err := s.view(func(tx *bbolt.Tx) error {
		return getJSON(tx, bucketClock, knowledgeKey, &kv, storage.ErrClockNotFound)
	})
	if err != nil {
		return nil, err
	}
	return kv, nil
}
