package cli

import "context"

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return err
	}
	c.session = nil

	c.io.Println("✓ Logged out. Local records are kept and will sync after the next login.")
	return nil
}
