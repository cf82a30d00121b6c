package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

//go:generate moq -out storage_mock.go . StoreStorage

// VersionStorage defines interface for the append-only entity version log on client
type VersionStorage interface {
	// AppendVersions atomically stores new versions together with the store knowledge vector.
	// Either all versions and the vector are persisted or nothing is.
	// Versions with already known UUIDs are skipped.
	AppendVersions(ctx context.Context, versions []*models.Version, knowledge crdt.KnowledgeVector) error

	// LoadVersions returns all versions in the order they were appended
	LoadVersions(ctx context.Context) ([]*models.Version, error)

	// GetVersion retrieves a version by UUID
	// Returns ErrVersionNotFound if version doesn't exist
	GetVersion(ctx context.Context, id uuid.UUID) (*models.Version, error)

	// CountVersions returns the number of stored versions
	CountVersions(ctx context.Context) (int, error)
}

// ClockStorage defines interface for the durable store clock
type ClockStorage interface {
	// InitClock stores the process UUID and initial knowledge vector
	InitClock(ctx context.Context, processID uuid.UUID, knowledge crdt.KnowledgeVector) error

	// GetProcessID returns the process UUID of this store
	// Returns ErrClockNotFound if the clock was never initialized
	GetProcessID(ctx context.Context) (uuid.UUID, error)

	// GetKnowledge returns the persisted knowledge vector
	// Returns ErrClockNotFound if the clock was never initialized
	GetKnowledge(ctx context.Context) (crdt.KnowledgeVector, error)
}

// StoreStorage combines the storages required by the local versioned store
type StoreStorage interface {
	VersionStorage
	ClockStorage
}
