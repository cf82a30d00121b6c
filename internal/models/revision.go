package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/crdt"
)

// RevisionRecord пакет изменений, отмеченный вектором знаний автора.
// Entities упорядочены от старых к новым.
type RevisionRecord struct {
	KnowledgeVector crdt.KnowledgeVector `json:"knowledgeVector"` // KnowledgeVector вектор автора на момент создания
	Entities        []Entity             `json:"entities"`        // Entities версии записей
}

// NewCatchUpRevision ревизия без записей, переносящая только вектор знаний удаленной стороны.
func NewCatchUpRevision(knowledge crdt.KnowledgeVector) RevisionRecord {
	return RevisionRecord{
		KnowledgeVector: knowledge.Clone(),
		Entities:        []Entity{},
	}
}

// IsCatchUp true для ревизии без записей
func (r RevisionRecord) IsCatchUp() bool {
	return len(r.Entities) == 0
}

// Validate проверяет, что каждая запись имеет UUID и дату обновления
func (r RevisionRecord) Validate() error {
	for i, e := range r.Entities {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		h := e.Header()
		if h.UUID == uuid.Nil {
			return fmt.Errorf("entity %d: %w: missing uuid", i, ErrInvalidEntity)
		}
		if h.ID == "" {
			return fmt.Errorf("entity %d: %w: missing id", i, ErrInvalidEntity)
		}
		if h.UpdatedDate.IsZero() {
			return fmt.Errorf("entity %d: %w: missing updated date", i, ErrInvalidEntity)
		}
	}
	return nil
}
