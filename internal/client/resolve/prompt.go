package resolve

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/caresync/internal/client/iocli"
	"github.com/iudanet/caresync/internal/models"
)

// Prompt показывает конфликтующие версии и спрашивает пользователя, какую оставить
type Prompt struct {
	io iocli.IO
}

func NewPrompt(io iocli.IO) *Prompt {
	return &Prompt{io: io}
}

func (p *Prompt) ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error) {
	if len(conflicts) == 0 {
		return models.Entity{}, ErrNoConflicts
	}

	p.io.Printf("\nConflict: %s has %d concurrent versions\n", conflicts[0].Key(), len(conflicts))
	for i, e := range conflicts {
		h := e.Header()
		state := ""
		if h.IsDeleted() {
			state = " [deleted]"
		}
		p.io.Printf("  %d) %q updated %s%s\n", i+1, e.Title(), h.UpdatedDate.Format(time.RFC3339), state)
	}

	for {
		if err := ctx.Err(); err != nil {
			return models.Entity{}, err
		}

		answer, err := p.io.ReadInput(fmt.Sprintf("Keep version [1-%d]: ", len(conflicts)))
		if err != nil {
			return models.Entity{}, fmt.Errorf("failed to read selection: %w", err)
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(conflicts) {
			return conflicts[n-1], nil
		}
		p.io.Printf("%v: %q\n", ErrInvalidSelection, answer)
	}
}
