package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	svc, _, err := c.syncService(ctx)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := svc.Synchronize(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pulled from server: %d revision(s)\n", result.PulledRevisions)
	c.io.Printf("Merged locally:     %d version(s)\n", result.MergedEntities)
	if result.ConflictsResolved > 0 {
		c.io.Printf("Conflicts resolved: %d\n", result.ConflictsResolved)
	}
	c.io.Printf("Pushed to server:   %d version(s) in %d revision(s)\n", result.PushedEntities, result.PushedRevisions)
	if result.PushAttempts > 1 {
		c.io.Printf("Push attempts:      %d\n", result.PushAttempts)
	}
	c.io.Printf("Knowledge:          %s\n", result.Knowledge)

	return nil
}
