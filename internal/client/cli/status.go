package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/caresync/internal/client/auth"
	"github.com/iudanet/caresync/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	authData, err := c.authService.Status(ctx)
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn):
		c.io.Println("Session: Not authenticated")
		c.io.Println("Run 'caresync login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	default:
		expiresAt := time.Unix(authData.ExpiresAt, 0)
		c.io.Println("Session: Authenticated")
		c.io.Printf("Username: %s\n", authData.Username)
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining := time.Until(expiresAt); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Session has expired. Please login again.")
		}
	}

	c.io.Println()
	c.io.Printf("Device ID: %s\n", c.store.ProcessID())
	c.io.Printf("Knowledge: %s\n", c.store.Knowledge())
	c.io.Printf("Versions:  %d\n", c.store.Size())
	for _, t := range models.EntityTypes {
		if n := len(c.store.Fetch(t)); n > 0 {
			c.io.Printf("  %-9s %d\n", t+":", n)
		}
	}

	if conflicts := c.store.Conflicts(); conflicts > 0 {
		c.io.Printf("⚠️  Unresolved conflicts: %d. Run 'caresync sync' to resolve them.\n", conflicts)
	}

	return nil
}
