// Package resolve содержит стратегии разрешения конфликтов между конкурентными версиями записи.
package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/caresync/internal/client/iocli"
	"github.com/iudanet/caresync/internal/client/store"
	"github.com/iudanet/caresync/internal/models"
)

// Названия стратегий для флага --resolve
const (
	StrategyEarliest = "earliest"
	StrategyLWW      = "lww"
	StrategyPrompt   = "prompt"
)

var (
	ErrNoConflicts      = errors.New("empty conflict set")
	ErrUnknownStrategy  = errors.New("unknown conflict resolution strategy")
	ErrInvalidSelection = errors.New("invalid selection")
)

// New возвращает resolver по названию стратегии
func New(strategy string, io iocli.IO) (store.ConflictResolver, error) {
	switch strategy {
	case "", StrategyEarliest:
		return EarliestCreated{}, nil
	case StrategyLWW:
		return LastWriteWins{}, nil
	case StrategyPrompt:
		return NewPrompt(io), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// EarliestCreated оставляет версию с самой ранней датой создания.
// Дата создания переносится между версиями записи, поэтому равенство - обычный случай
// и решается меньшим UUID.
type EarliestCreated struct{}

func (EarliestCreated) ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error) {
	return pick(conflicts, func(a, b *models.Versioned) bool {
		if !a.CreatedDate.Equal(b.CreatedDate) {
			return a.CreatedDate.Before(b.CreatedDate)
		}
		return bytes.Compare(a.UUID[:], b.UUID[:]) < 0
	})
}

// LastWriteWins оставляет последнюю по дате обновления версию, при равенстве больший UUID
type LastWriteWins struct{}

func (LastWriteWins) ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error) {
	return pick(conflicts, func(a, b *models.Versioned) bool {
		if !a.UpdatedDate.Equal(b.UpdatedDate) {
			return a.UpdatedDate.After(b.UpdatedDate)
		}
		return bytes.Compare(a.UUID[:], b.UUID[:]) > 0
	})
}

// pick возвращает элемент, для которого better истинно относительно всех остальных
func pick(conflicts []models.Entity, better func(a, b *models.Versioned) bool) (models.Entity, error) {
	if len(conflicts) == 0 {
		return models.Entity{}, ErrNoConflicts
	}

	best := -1
	for i, e := range conflicts {
		h := e.Header()
		if h == nil {
			return models.Entity{}, fmt.Errorf("conflict %d: %w", i, models.ErrInvalidEntity)
		}
		if best < 0 || better(h, conflicts[best].Header()) {
			best = i
		}
	}
	return conflicts[best], nil
}
