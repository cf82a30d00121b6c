package cli

import (
	"context"
	"fmt"
)

const updateUsage = "Usage: caresync update <type> <id> [--sync]"

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	t, id, err := parseTypeAndID(args, updateUsage)
	if err != nil {
		return err
	}

	current, err := c.store.FetchByID(t, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== Update %s %s ===\n", t, id)
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	if err := c.edit(current); err != nil {
		return err
	}
	if err := c.editTags(current); err != nil {
		return err
	}

	updated, err := c.store.Update(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", t, err)
	}

	c.io.Println()
	c.io.Printf("✓ %s updated, new version %s\n", t, updated[0].Header().UUID)
	if err := c.show(updated[0]); err != nil {
		return err
	}

	return c.maybeSync(ctx, args)
}
