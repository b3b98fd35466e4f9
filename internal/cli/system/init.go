package system

import (
	"errors"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Reset existing data to an empty document. A backup is taken first."`
	Seed  bool `help:"Add the starter habits after initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	err := ctx.Store.Init()
	switch {
	case errors.Is(err, storage.ErrAlreadyInitialized) && c.Force:
		ctx.PerformAutomaticBackup()
		if err := ctx.Store.Save(models.DefaultState()); err != nil {
			return err
		}
		ctx.Printf("Reset habits storage at: %s\n", ctx.Store.GetConfigPath())
	case err != nil:
		return err
	default:
		ctx.Printf("Initialized habits storage at: %s\n", ctx.Store.GetConfigPath())
	}

	if c.Seed {
		ids, err := ctx.Tracker.SeedDefaultHabits()
		if err != nil {
			return err
		}
		ctx.Printf("✓ Added %d starter habits\n", len(ids))
	}
	return nil
}
