package storage

import (
	"context"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

//go:generate moq -out revisions_mock.go . RevisionStorage

// RevisionStorage журнал зашифрованных ревизий учетной записи и ее вектор знаний
type RevisionStorage interface {
	// AppendRevisions атомарно проверяет, что вектор последней ревизии журнала строго меньше
	// deviceKnowledge, добавляет revisions и объединяет deviceKnowledge с вектором учетной записи.
	// Возвращает ErrStaleKnowledge, если проверка не прошла; в этом случае ничего не записывается.
	// Возвращает новый вектор учетной записи.
	AppendRevisions(ctx context.Context, userID, deviceID string, deviceKnowledge crdt.KnowledgeVector, revisions []*models.StoredRevision) (crdt.KnowledgeVector, error)

	// RevisionsSince возвращает ревизии, вектор которых не строго меньше since, в порядке добавления
	RevisionsSince(ctx context.Context, userID string, since crdt.KnowledgeVector) ([]*models.StoredRevision, error)

	// Knowledge вектор знаний учетной записи, пустой для нового пользователя
	Knowledge(ctx context.Context, userID string) (crdt.KnowledgeVector, error)
}
