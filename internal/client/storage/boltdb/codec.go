package boltdb

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

func bucketOf(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, fmt.Errorf("%s bucket not found", name)
	}
	return b, nil
}

// putJSON сохраняет v в JSON под ключом key
func putJSON(tx *bbolt.Tx, name, key []byte, v any) error {
	b, err := bucketOf(tx, name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// getJSON читает ключ key в v. Если ключа нет, возвращает notFound.
func getJSON(tx *bbolt.Tx, name, key []byte, v any, notFound error) error {
	b, err := bucketOf(tx, name)
	if err != nil {
		return err
	}
	data := b.Get(key)
	if data == nil {
		return notFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}
