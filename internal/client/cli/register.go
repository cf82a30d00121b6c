package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	passphrase, err := c.io.ReadPassword("Passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if passphrase != confirm {
		return fmt.Errorf("passphrases do not match")
	}

	c.io.Println()
	c.io.Println("Registering...")

	result, err := c.authService.Register(ctx, username, passphrase)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("User ID:  %s\n", result.UserID)
	c.io.Println()
	c.io.Println("Every device of this account must use the same passphrase.")
	c.io.Println("Run 'caresync login' to start a session on this device.")

	return nil
}
