package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func TestJSONStoreInit(t *testing.T) {
	store := setupTestJSONStore(t)

	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	if err := store.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized on second Init, got %v", err)
	}
}

func TestJSONStoreSaveLoad(t *testing.T) {
	store := setupTestJSONStore(t)

	state := models.DefaultState()
	state.Settings.Theme = constants.ThemeDark
	state.Habits = append(state.Habits, models.Habit{
		ID:        "h1",
		Name:      "Stretch",
		Color:     constants.ColorRose,
		Frequency: models.Weekly(3),
		CreatedAt: "2026-01-01",
	})
	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := NewJSONStore(store.GetConfigPath()).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Settings.Theme != constants.ThemeDark {
		t.Errorf("expected dark theme, got %s", got.Settings.Theme)
	}
	if len(got.Habits) != 1 || got.Habits[0].Frequency.WeeklyTarget != 3 {
		t.Errorf("unexpected habits: %+v", got.Habits)
	}

	if _, err := os.Stat(store.GetConfigPath() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestJSONStoreWritesCamelCaseDocument(t *testing.T) {
	store := setupTestJSONStore(t)
	state := models.DefaultState()
	state.Logs = append(state.Logs, models.HabitLog{HabitID: "h1", Date: "2026-01-01", Completed: true, Timestamp: 1})
	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	for _, key := range []string{"version", "habits", "logs", "settings"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
	logs := raw["logs"].([]any)
	if _, ok := logs[0].(map[string]any)["habitId"]; !ok {
		t.Error("log entry missing habitId")
	}
}

func TestJSONStoreLoadFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{"missing file", nil},
		{"garbage", ptr("{not json")},
		{"empty file", ptr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "habits.json")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0600); err != nil {
					t.Fatal(err)
				}
			}

			state, err := NewJSONStore(path).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if state.Version != constants.CurrentVersion || len(state.Habits) != 0 {
				t.Errorf("expected default state, got %+v", state)
			}
		})
	}
}

func TestJSONStoreUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// Parent of the document is a regular file, so the directory cannot be created
	store := NewJSONStore(filepath.Join(blocker, "habits.json"))
	if err := store.Save(models.DefaultState()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	initial := models.DefaultState()
	initial.Habits = append(initial.Habits, models.Habit{ID: "h1", Name: "Walk"})
	store := NewMemoryStore(initial)

	// Mutating the caller's copy must not leak into the store
	initial.Habits[0].Name = "Changed"
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Habits[0].Name != "Walk" {
		t.Errorf("store shares memory with caller: %q", got.Habits[0].Name)
	}

	got.Habits[0].Name = "Run"
	if err := store.Save(got); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.Saves() != 1 {
		t.Errorf("expected 1 save, got %d", store.Saves())
	}

	boom := errors.New("disk on fire")
	store.FailSaves(boom)
	if err := store.Save(models.DefaultState()); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	reloaded, _ := store.Load()
	if reloaded.Habits[0].Name != "Run" {
		t.Errorf("failed save changed the document: %+v", reloaded.Habits)
	}
}

func ptr(s string) *string { return &s }
