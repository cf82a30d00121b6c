package cli

import "strings"

const historyUsage = "Usage: caresync history <type> <id>"

func (c *Cli) runHistory(args []string) error {
	t, id, err := parseTypeAndID(args, historyUsage)
	if err != nil {
		return err
	}

	versions, err := c.store.Versions(t, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== History of %s %s ===\n", t, id)
	c.io.Println()

	for i, v := range versions {
		h := v.Entity.Header()
		state := "updated"
		switch {
		case h.IsDeleted():
			state = "deleted"
		case len(h.PreviousVersionUUIDs) == 0:
			state = "created"
		case len(h.PreviousVersionUUIDs) > 1:
			state = "merged"
		}

		c.io.Printf("%d. %s  %s  %s\n", i+1, h.UUID, state, h.UpdatedDate.Format("2006-01-02 15:04:05"))
		c.io.Printf("   Title:     %s\n", v.Entity.Title())
		c.io.Printf("   Knowledge: %s\n", v.Knowledge)
		if len(h.PreviousVersionUUIDs) > 0 {
			prev := make([]string, 0, len(h.PreviousVersionUUIDs))
			for _, p := range h.PreviousVersionUUIDs {
				prev = append(prev, p.String())
			}
			c.io.Printf("   Previous:  %s\n", strings.Join(prev, ", "))
		}
	}

	current, err := c.store.FetchByID(t, id)
	if err != nil {
		c.io.Println()
		c.io.Printf("Current: %v\n", err)
		return nil
	}
	return c.show(current)
}
