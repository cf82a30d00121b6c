package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду. args включает саму команду первым элементом.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	rest := args
	if len(rest) > 0 {
		rest = rest[1:]
	}

	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, rest)
	case "update":
		return c.runUpdate(ctx, rest)
	case "delete":
		return c.runDelete(ctx, rest)
	case "list":
		return c.runList(rest)
	case "history":
		return c.runHistory(rest)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
