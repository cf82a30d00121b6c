package cli

import (
	"fmt"
	"time"

	"github.com/iudanet/caresync/internal/models"
)

const listUsage = "Usage: caresync list <patient|carePlan|contact|task|outcome> [--at YYYY-MM-DD]"

func (c *Cli) runList(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. %s", listUsage)
	}

	t, err := models.ParseEntityType(args[0])
	if err != nil {
		return fmt.Errorf("%w. %s", err, listUsage)
	}

	at, err := atFlag(args[1:])
	if err != nil {
		return fmt.Errorf("%w. %s", err, listUsage)
	}

	var entities []models.Entity
	if at == nil {
		entities = c.store.Fetch(t)
	} else {
		entities = c.store.FetchAt(t, *at)
	}

	c.io.Printf("=== %s records ===\n", t)
	c.io.Println()

	if len(entities) == 0 {
		c.io.Printf("No %s records found.\n", t)
		c.io.Println()
		c.io.Printf("Use 'caresync add %s' to add your first record.\n", t)
		return nil
	}

	c.io.Printf("Found %d record(s):\n", len(entities))
	c.io.Println()

	for i, e := range entities {
		h := e.Header()
		c.io.Printf("%d. %s\n", i+1, e.Title())
		c.io.Printf("   ID:      %s\n", h.ID)
		c.io.Printf("   Updated: %s\n", h.UpdatedDate.Format("2006-01-02 15:04"))
		if len(h.Tags) > 0 {
			c.io.Printf("   Tags:    %v\n", h.Tags)
		}
		c.io.Println()
	}

	c.io.Printf("Use 'caresync history %s <id>' to view all versions.\n", t)
	return nil
}

// atFlag разбирает --at YYYY-MM-DD. Дата означает конец этого дня по местному времени.
func atFlag(args []string) (*time.Time, error) {
	for i, arg := range args {
		if arg != "--at" {
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("missing date after --at")
		}
		d, err := time.ParseInLocation(dateLayout, args[i+1], time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", args[i+1], err)
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end, nil
	}
	return nil, nil
}
