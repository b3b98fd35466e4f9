package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/tracker"
)

type ExportCmd struct {
	Out    string `short:"o" help:"Destination file. Defaults to habit-tracker-backup-<today>.json in the current directory."`
	Stdout bool   `help:"Write the document to standard output instead of a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	text, err := ctx.Tracker.Export()
	if err != nil {
		return err
	}

	if c.Stdout {
		ctx.Println(text)
		return nil
	}

	dest := c.Out
	if dest == "" {
		dest = ctx.Tracker.ExportFilename()
	}
	dest, err = storage.ExpandPath(dest)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, []byte(text), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	ctx.Printf("✓ Exported to %s\n", dest)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Exported JSON document to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	incoming, err := tracker.ParseDocument(data)
	if err != nil {
		return err
	}

	ctx.Printf("Import contains %d habit(s) and %d log(s).\n", len(incoming.Habits), len(incoming.Logs))
	ok, err := ctx.Ask(c.Yes, "Replace all current data?", "Every habit, log and setting will be replaced by the imported document.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Import cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.Import(string(data)); err != nil {
		return err
	}
	ctx.Println("✓ Data imported successfully!")
	return nil
}
