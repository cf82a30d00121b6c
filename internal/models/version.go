package models

import (
	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/crdt"
)

// Version сохраненная версия записи вместе с вектором знаний,
// которым она была отмечена при создании или при получении с удаленной стороны.
// Версии неизменяемы после добавления в хранилище.
type Version struct {
	Knowledge crdt.KnowledgeVector `json:"knowledge"` // Knowledge вектор знаний автора версии
	Entity    Entity               `json:"entity"`    // Entity снимок записи
}

// NewVersion создает версию из копии записи
func NewVersion(e Entity, knowledge crdt.KnowledgeVector) *Version {
	return &Version{
		Entity:    e.Clone(),
		Knowledge: knowledge.Clone(),
	}
}

// VersionUUID реализует crdt.Version
func (v *Version) VersionUUID() uuid.UUID {
	return v.Entity.Header().UUID
}

// LineageKey реализует crdt.Version
func (v *Version) LineageKey() string {
	return v.Entity.Key()
}

// PreviousVersionUUIDs реализует crdt.Version
func (v *Version) PreviousVersionUUIDs() []uuid.UUID {
	return v.Entity.Header().PreviousVersionUUIDs
}

var _ crdt.Version = (*Version)(nil)
