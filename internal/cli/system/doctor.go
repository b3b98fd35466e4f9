package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/jrr00064/habit-tracker/internal/backup"
	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/migration"
	"github.com/jrr00064/habit-tracker/internal/validation"
)

// errSkipped marks a check that does not apply to the current store
var errSkipped = errors.New("skipped")

// schemaStore is implemented by the SQL backends
type schemaStore interface {
	SchemaRunner() (*migration.Runner, error)
}

type DoctorCmd struct {
	Fix bool `help:"Remove logs that reference deleted habits."`
}

type check struct {
	name    string
	run     func(ctx *cli.Context) error
	warning bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	if cmd.Fix {
		if err := fixOrphans(ctx); err != nil {
			return err
		}
	}

	checks := []check{
		{name: "Store reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Migrations complete", run: checkMigrationsComplete},
		{name: "Backups present", run: checkBackupsPresent, warning: true},
		{name: "Data validation", run: checkValidation},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClock(time.Now()) }},
	}

	hasError := false
	reachable := true
	for _, c := range checks {
		if !reachable && c.name != "Clock/timezone" {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Store reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

// skipError carries the reason a check was skipped
type skipError struct{ reason string }

func skipped(reason string) error {
	return &skipError{reason}
}

func (e *skipError) Error() string { return e.reason }
func (e *skipError) Unwrap() error { return errSkipped }

func fixOrphans(ctx *cli.Context) error {
	removed, err := ctx.Tracker.PruneOrphanLogs()
	if err != nil {
		return fmt.Errorf("failed to remove orphaned logs: %w", err)
	}
	if removed > 0 {
		ctx.Printf("✓ Removed %d orphaned log(s)\n\n", removed)
	}
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if _, err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	return nil
}

func schemaRunner(ctx *cli.Context) (*migration.Runner, error) {
	s, ok := ctx.Store.(schemaStore)
	if !ok {
		return nil, skipped("store has no schema")
	}
	runner, err := s.SchemaRunner()
	if err != nil {
		return nil, err
	}
	if runner == nil {
		return nil, skipped("database not created yet")
	}
	return runner, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return skipped("store is not a local file")
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habits backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}

	result := validation.New().ValidateState(state)
	if !result.HasConflicts() {
		return nil
	}
	msg := result.FormatReport()
	if n := result.Count(validation.ConflictOrphanLog); n > 0 {
		msg += fmt.Sprintf("   %d orphaned log(s) can be removed with 'habits doctor --fix'", n)
	}
	return errors.New(msg)
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
