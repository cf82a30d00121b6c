package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	passphrase, err := c.readPassphrase()
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, username, passphrase)
	if err != nil {
		return err
	}
	c.session = session

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Session expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	c.io.Printf("Device ID: %s\n", c.store.ProcessID())
	c.io.Println()
	c.io.Println("Your session has been saved securely.")

	return nil
}
