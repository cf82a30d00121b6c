package cli

import (
	"context"
	"errors"
)

// runWatch синхронизирует хранилище до отмены ctx (Ctrl+C)
func (c *Cli) runWatch(ctx context.Context) error {
	svc, source, err := c.syncService(ctx)
	if err != nil {
		return err
	}

	c.io.Println("Watching for changes. Press Ctrl+C to stop.")

	var notifications <-chan struct{}
	if source != nil {
		notifications = source.Notifications(ctx)
	}

	// первый цикл сразу, затем по уведомлениям и таймеру
	if _, err := svc.Synchronize(ctx); err != nil {
		c.io.Printf("Initial synchronization failed: %v\n", err)
	}

	err = svc.Run(ctx, notifications)
	if errors.Is(err, context.Canceled) {
		c.io.Println("Stopped.")
		return nil
	}
	return err
}
