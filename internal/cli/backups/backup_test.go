package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/storage/sqlite"
)

func setupTestStore(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	tests := []struct {
		name  string
		store func(dir string) storage.Provider
		ext   string
	}{
		{
			name:  "json",
			store: func(dir string) storage.Provider { return storage.NewJSONStore(filepath.Join(dir, "habits.json")) },
			ext:   ".json",
		},
		{
			name:  "sqlite",
			store: func(dir string) storage.Provider { return sqlite.NewStore(filepath.Join(dir, "habits.db")) },
			ext:   ".db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			ctx, out := setupTestStore(t, tt.store(dir))

			if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup create failed: %v", err)
			}
			if !strings.Contains(out.String(), "Backup created: "+constants.BackupFilePrefix) {
				t.Errorf("unexpected output: %s", out.String())
			}

			entries, err := os.ReadDir(filepath.Join(dir, constants.BackupDirName))
			if err != nil {
				t.Fatalf("failed to read backup dir: %v", err)
			}
			if len(entries) != 1 || filepath.Ext(entries[0].Name()) != tt.ext {
				t.Fatalf("backup dir = %v, want one %s file", entries, tt.ext)
			}

			out.Reset()
			if err := (&BackupListCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup list failed: %v", err)
			}
			if !strings.Contains(out.String(), "Available backups (1 total") {
				t.Errorf("unexpected list output: %s", out.String())
			}
		})
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestStore(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json")))

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	ctx, _ := setupTestStore(t, storage.NewMemoryStore(models.DefaultState()))

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error backing up an in-memory store")
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	dir := t.TempDir()
	ctx, out := setupTestStore(t, storage.NewJSONStore(filepath.Join(dir, "habits.json")))

	if _, err := ctx.Tracker.AddHabit(models.HabitInput{Name: "Read", Color: constants.ColorAmber}); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, constants.BackupDirName))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup, got %v (%v)", entries, err)
	}
	backupName := entries[0].Name()

	if _, err := ctx.Tracker.AddHabit(models.HabitInput{Name: "Write", Color: constants.ColorBlue}); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	ctx.Confirm = func(string, string) (bool, error) { return false, nil }
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: backupName}).Run(ctx); err != nil {
		t.Fatalf("declined restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&BackupRestoreCmd{BackupFile: backupName, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	active, err := ctx.Tracker.ActiveHabits()
	if err != nil {
		t.Fatalf("ActiveHabits failed: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Read" {
		t.Errorf("habits after restore = %+v, want only Read", active)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestStore(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json")))

	err := (&BackupRestoreCmd{BackupFile: "habits-19990101-000000.json", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("error = %v, want backup file not found", err)
	}
}
