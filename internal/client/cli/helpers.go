package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/models"
)

const dateLayout = "2006-01-02"

// field запрашивает значение поля. Пустой ввод оставляет current.
func (c *Cli) field(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

// required как field, но пустой результат является ошибкой
func (c *Cli) required(label, current string) (string, error) {
	value, err := c.field(label, current)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.ToLower(label))
	}
	return value, nil
}

// listField список через запятую
func (c *Cli) listField(label string, current []string) ([]string, error) {
	value, err := c.field(label+" (comma separated)", strings.Join(current, ", "))
	if err != nil {
		return nil, err
	}
	return splitList(value), nil
}

func (c *Cli) dateField(label string, current *time.Time) (*time.Time, error) {
	cur := ""
	if current != nil {
		cur = current.Format(dateLayout)
	}
	value, err := c.field(label+" (YYYY-MM-DD)", cur)
	if err != nil || value == "" || value == cur {
		return current, err
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", strings.ToLower(label), err)
	}
	return &d, nil
}

func (c *Cli) intField(label string, current int) (int, error) {
	value, err := c.field(label, strconv.Itoa(current))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", strings.ToLower(label), err)
	}
	return n, nil
}

// idField идентификатор новой записи, по умолчанию случайный UUID
func (c *Cli) idField() (string, error) {
	value, err := c.io.ReadInput("ID (optional, generated if empty): ")
	if err != nil {
		return "", fmt.Errorf("failed to read id: %w", err)
	}
	if value == "" {
		return uuid.New().String(), nil
	}
	return value, nil
}

// refField ссылка на текущую версию другой записи по ее ID
func (c *Cli) refField(label string, t models.EntityType, current *uuid.UUID) (*uuid.UUID, error) {
	value, err := c.io.ReadInput(label + " ID (optional): ")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return current, nil
	}
	ref, err := c.store.FetchByID(t, value)
	if err != nil {
		return nil, err
	}
	id := ref.Header().UUID
	return &id, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseTypeAndID разбирает аргументы <type> <id>
func parseTypeAndID(args []string, usage string) (models.EntityType, string, error) {
	if len(args) < 2 {
		return "", "", fmt.Errorf("missing arguments. %s", usage)
	}
	t, err := models.ParseEntityType(args[0])
	if err != nil {
		return "", "", fmt.Errorf("%w. %s", err, usage)
	}
	return t, args[1], nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
