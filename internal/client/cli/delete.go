package cli

import (
	"context"
	"fmt"
	"strings"
)

const deleteUsage = "Usage: caresync delete <type> <id> [--sync] [--yes]"

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	t, id, err := parseTypeAndID(args, deleteUsage)
	if err != nil {
		return err
	}

	current, err := c.store.FetchByID(t, id)
	if err != nil {
		return err
	}

	if !hasFlag(args, "--yes") {
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete %s %q? [y/N]: ", t, current.Title()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	deleted, err := c.store.Delete(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", t, err)
	}

	c.io.Printf("✓ %s %s deleted (tombstone version %s)\n", t, id, deleted[0].Header().UUID)
	return c.maybeSync(ctx, args)
}
