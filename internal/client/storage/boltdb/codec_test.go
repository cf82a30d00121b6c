package boltdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/caresync/internal/client/storage"
)

func TestJSONHelpers(t *testing.T) {
	store := newTestStorage(t)
	errMissing := errors.New("missing")
	key := []byte("sample")

	type sample struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.update(func(tx *bbolt.Tx) error {
		return putJSON(tx, bucketAuth, key, sample{Name: "walk", Count: 3})
	}))

	tests := []struct {
		name    string
		bucket  []byte
		key     []byte
		want    sample
		wantErr string
		errIs   error
	}{
		{"stored value", bucketAuth, key, sample{Name: "walk", Count: 3}, "", nil},
		{"missing key", bucketAuth, []byte("other"), sample{}, "", errMissing},
		{"missing bucket", []byte("nope"), key, sample{}, "nope bucket not found", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := store.view(func(tx *bbolt.Tx) error {
				return getJSON(tx, tt.bucket, tt.key, &got, errMissing)
			})
			switch {
			case tt.errIs != nil:
				assert.ErrorIs(t, err, tt.errIs)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStorage_GetAuth_Corrupted(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuth).Put(authKey, []byte("{not json"))
	}))

	_, err := store.GetAuth(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrAuthNotFound)
	assert.Contains(t, err.Error(), "failed to unmarshal current")

	_, err = store.IsAuthenticated(context.Background())
	assert.Error(t, err)
}
