package tracker

import (
	"testing"
	"time"

	"github.com/jrr00064/habit-tracker/internal/calendar"
)

func TestToggleCompletion(t *testing.T) {
	tr, _ := setupTestTracker(t, testToday)
	id := addHabit(t, tr, "Water")

	completed, err := tr.ToggleCompletion(id, "")
	if err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	if !completed {
		t.Error("first toggle must complete")
	}
	done, _ := tr.IsCompleted(id, "")
	if !done {
		t.Error("IsCompleted should be true after first toggle")
	}

	completed, err = tr.ToggleCompletion(id, testToday)
	if err != nil {
		t.Fatalf("second ToggleCompletion failed: %v", err)
	}
	if completed {
		t.Error("second toggle must un-complete")
	}
	done, _ = tr.IsCompleted(id, testToday)
	if done {
		t.Error("IsCompleted should be false after second toggle")
	}

	logs, _ := tr.HabitLogs(id)
	if len(logs) != 1 {
		t.Fatalf("expected the log to be reused, got %d logs", len(logs))
	}
	if logs[0].Completed {
		t.Error("log should be stored as not completed")
	}
}

func TestToggleRefreshesTimestamp(t *testing.T) {
	store := setupStoreOnly(t)
	id := "h1"

	first := New(store, WithClock(calendar.FixedClock(time.Date(2026, 1, 7, 8, 0, 0, 0, time.UTC))))
	if _, err := first.ToggleCompletion(id, ""); err != nil {
		t.Fatal(err)
	}
	later := New(store, WithClock(calendar.FixedClock(time.Date(2026, 1, 7, 20, 0, 0, 0, time.UTC))))
	if _, err := later.ToggleCompletion(id, ""); err != nil {
		t.Fatal(err)
	}

	logs, _ := later.HabitLogs(id)
	want := float64(time.Date(2026, 1, 7, 20, 0, 0, 0, time.UTC).UnixMilli())
	if logs[0].Timestamp != want {
		t.Errorf("timestamp = %v, want %v", logs[0].Timestamp, want)
	}
}

func TestToggleRejectsBadDate(t *testing.T) {
	tr, store := setupTestTracker(t, testToday)
	id := addHabit(t, tr, "Water")
	before := store.Saves()

	for _, d := range []string{"2026-13-01", "07/01/2026", "yesterday"} {
		if _, err := tr.ToggleCompletion(id, d); err == nil {
			t.Errorf("expected error for date %q", d)
		}
		if _, err := tr.IsCompleted(id, d); err == nil {
			t.Errorf("IsCompleted: expected error for date %q", d)
		}
	}
	if store.Saves() != before {
		t.Error("rejected toggles must not write")
	}
}

func TestIsCompletedWithoutLogs(t *testing.T) {
	tr, _ := setupTestTracker(t, testToday)
	done, err := tr.IsCompleted("anything", "2025-12-31")
	if err != nil {
		t.Fatalf("IsCompleted failed: %v", err)
	}
	if done {
		t.Error("expected false without logs")
	}
}

func TestHabitLogsSortedDescending(t *testing.T) {
	tr, _ := setupTestTracker(t, testToday)
	id := addHabit(t, tr, "Water")
	other := addHabit(t, tr, "Read")
	toggle(t, tr, id, "2026-01-03", testToday, "2025-12-30", "2026-01-05")
	toggle(t, tr, other, "2026-01-04")

	logs, err := tr.HabitLogs(id)
	if err != nil {
		t.Fatalf("HabitLogs failed: %v", err)
	}
	want := []string{testToday, "2026-01-05", "2026-01-03", "2025-12-30"}
	if len(logs) != len(want) {
		t.Fatalf("expected %d logs, got %d", len(want), len(logs))
	}
	for i, l := range logs {
		if l.Date != want[i] {
			t.Errorf("log %d: got %s, want %s", i, l.Date, want[i])
		}
		if l.HabitID != id {
			t.Errorf("log %d belongs to %s", i, l.HabitID)
		}
	}
}

func TestPruneOrphanLogs(t *testing.T) {
	tr, store := setupTestTracker(t, testToday)
	id := addHabit(t, tr, "Water")
	toggle(t, tr, id, testToday)
	toggle(t, tr, "ghost", testToday, "2026-01-06")

	removed, err := tr.PruneOrphanLogs()
	if err != nil {
		t.Fatalf("PruneOrphanLogs failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 orphan logs removed, got %d", removed)
	}
	state := mustState(t, tr)
	if len(state.Logs) != 1 || state.Logs[0].HabitID != id {
		t.Errorf("unexpected logs after prune: %+v", state.Logs)
	}

	before := store.Saves()
	removed, err = tr.PruneOrphanLogs()
	if err != nil || removed != 0 {
		t.Errorf("second prune = %d, %v", removed, err)
	}
	if store.Saves() != before {
		t.Error("prune without orphans should not write")
	}
}
