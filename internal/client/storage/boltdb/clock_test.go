package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crdt"
)

func TestStorage_ClockNotInitialized(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetProcessID(ctx)
	assert.ErrorIs(t, err, storage.ErrClockNotFound)

	_, err = store.GetKnowledge(ctx)
	assert.ErrorIs(t, err, storage.ErrClockNotFound)
}

func TestStorage_InitClock(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "clock.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	kv := crdt.NewKnowledgeVector(nil)
	kv.Increment(testProcess)
	require.NoError(t, store.InitClock(ctx, testProcess, kv))
	require.NoError(t, store.Close())

	// После переоткрытия часы на месте
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.GetProcessID(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProcess, id)

	got, err := store.GetKnowledge(ctx)
	require.NoError(t, err)
	assert.Equal(t, crdt.KnowledgeVector{testProcess: 1}, got)
}
