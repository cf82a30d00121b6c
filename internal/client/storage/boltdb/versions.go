package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

var knowledgeKey = []byte("knowledge")

// AppendVersions stores versions and the knowledge vector in a single transaction.
// Ключ в bucket versions - порядковый номер (big-endian), так ForEach отдаёт версии в порядке вставки.
func (s *Storage) AppendVersions(ctx context.Context, versions []*models.Version, knowledge crdt.KnowledgeVector) error {
	err := s.update(func(tx *bbolt.Tx) error {
		vb := tx.Bucket(bucketVersions)
		ib := tx.Bucket(bucketVersionIndex)
		cb := tx.Bucket(bucketClock)
		if vb == nil || ib == nil || cb == nil {
			return fmt.Errorf("versions buckets not found")
		}

		for _, v := range versions {
			id := v.VersionUUID()
			if ib.Get(id[:]) != nil {
				continue
			}

			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal version %s: %w", id, err)
			}

			seq, err := vb.NextSequence()
			if err != nil {
				return fmt.Errorf("failed to allocate sequence: %w", err)
			}
			key := seqKey(seq)

			if err := vb.Put(key, data); err != nil {
				return fmt.Errorf("failed to save version %s: %w", id, err)
			}
			if err := ib.Put(id[:], key); err != nil {
				return fmt.Errorf("failed to index version %s: %w", id, err)
			}
		}

		return putJSON(tx, bucketClock, knowledgeKey, knowledge)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// LoadVersions returns all stored versions in append order
func (s *Storage) LoadVersions(ctx context.Context) ([]*models.Version, error) {
	var versions []*models.Version

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVersions)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, data []byte) error {
			v := &models.Version{}
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("failed to unmarshal version %d: %w", binary.BigEndian.Uint64(k), err)
			}
			versions = append(versions, v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return versions, nil
}

// GetVersion retrieves a version by UUID
func (s *Storage) GetVersion(ctx context.Context, id uuid.UUID) (*models.Version, error) {
	var v *models.Version

	err := s.view(func(tx *bbolt.Tx) error {
		ib := tx.Bucket(bucketVersionIndex)
		vb := tx.Bucket(bucketVersions)
		if ib == nil || vb == nil {
			return storage.ErrVersionNotFound
		}

		key := ib.Get(id[:])
		if key == nil {
			return storage.ErrVersionNotFound
		}
		data := vb.Get(key)
		if data == nil {
			return storage.ErrVersionNotFound
		}

		v = &models.Version{}
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// CountVersions returns the number of stored versions
func (s *Storage) CountVersions(ctx context.Context) (int, error) {
	var count int
	err := s.view(func(tx *bbolt.Tx) error {
		if bucket := tx.Bucket(bucketVersionIndex); bucket != nil {
			count = bucket.Stats().KeyN
		}
		return nil
	})
	return count, err
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
