package sync

import (
	"context"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

//go:generate moq -out remote_mock.go . Remote

// Remote удаленная сторона синхронизации
type Remote interface {
	// PullRevisions вызывает merge для каждой ревизии, не предшествующей строго since,
	// затем один раз с пустой ревизией, несущей вектор знаний удаленной стороны.
	// Ошибка merge прерывает pull и возвращается вызывающему.
	PullRevisions(ctx context.Context, since crdt.KnowledgeVector, merge func(models.RevisionRecord) error) error

	// PushRevisions отправляет ревизии вместе с вектором устройства на момент их вычисления.
	// Возвращает ErrStaleKnowledge, если удаленная сторона уже знает больше.
	PushRevisions(ctx context.Context, revisions []models.RevisionRecord, deviceKnowledge crdt.KnowledgeVector) error

	// ChooseConflictResolution выбирает одну из конкурентных версий записи
	ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error)
}
