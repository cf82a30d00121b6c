package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/caresync/internal/models"
)

const addUsage = "Usage: caresync add <patient|carePlan|contact|task|outcome> [--sync]"

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. %s", addUsage)
	}

	t, err := models.ParseEntityType(args[0])
	if err != nil {
		return fmt.Errorf("%w. %s", err, addUsage)
	}

	c.io.Printf("=== Add %s ===\n", t)
	c.io.Println()

	entity, err := c.newEntity(t)
	if err != nil {
		return err
	}
	if err := c.edit(entity); err != nil {
		return err
	}
	if err := c.editTags(entity); err != nil {
		return err
	}

	added, err := c.store.Add(ctx, entity)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", t, err)
	}

	c.io.Println()
	c.io.Printf("✓ %s added successfully!\n", t)
	if err := c.show(added[0]); err != nil {
		return err
	}

	return c.maybeSync(ctx, args)
}

// newEntity создает пустую запись с ID, для outcome ID строится по задаче и номеру вхождения
func (c *Cli) newEntity(t models.EntityType) (models.Entity, error) {
	if t == models.EntityTypeOutcome {
		return c.newOutcome()
	}

	id, err := c.idField()
	if err != nil {
		return models.Entity{}, err
	}
	v := models.Versioned{ID: id}

	switch t {
	case models.EntityTypePatient:
		return models.NewPatientEntity(&models.Patient{Versioned: v}), nil
	case models.EntityTypeCarePlan:
		return models.NewCarePlanEntity(&models.CarePlan{Versioned: v}), nil
	case models.EntityTypeContact:
		return models.NewContactEntity(&models.Contact{Versioned: v}), nil
	default:
		return models.NewTaskEntity(&models.Task{Versioned: v, ImpactsAdherence: true}), nil
	}
}

func (c *Cli) newOutcome() (models.Entity, error) {
	taskID, err := c.required("Task ID", "")
	if err != nil {
		return models.Entity{}, err
	}
	task, err := c.store.FetchByID(models.EntityTypeTask, taskID)
	if err != nil {
		return models.Entity{}, err
	}

	occurrence, err := c.intField("Occurrence index", 0)
	if err != nil {
		return models.Entity{}, err
	}

	taskUUID := task.Header().UUID
	return models.NewOutcomeEntity(&models.Outcome{
		TaskUUID:            taskUUID,
		TaskOccurrenceIndex: occurrence,
		Versioned:           models.Versioned{ID: models.OutcomeID(taskUUID, occurrence)},
	}), nil
}

// maybeSync синхронизирует после изменения, если передан --sync
func (c *Cli) maybeSync(ctx context.Context, args []string) error {
	if !hasFlag(args, "--sync") {
		c.io.Println()
		c.io.Println("Run 'caresync sync' to synchronize with server.")
		return nil
	}
	c.io.Println()
	return c.runSync(ctx)
}
