package tracker

import (
	"fmt"
	"sort"

	"github.com/jrr00064/habit-tracker/internal/calendar"
	"github.com/jrr00064/habit-tracker/internal/models"
)

// resolveDate maps "" to today and rejects anything that is not YYYY-MM-DD
func (t *Tracker) resolveDate(date string) (string, error) {
	if date == "" {
		return t.cal.Today(), nil
	}
	if _, err := calendar.ParseDate(date); err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}
	return date, nil
}

// ToggleCompletion flips the log for (habitID, date); "" means today. The first
// toggle of a pair always creates a completed log. Returns the new state.
// The habit id is not checked against the registry.
func (t *Tracker) ToggleCompletion(habitID, date string) (bool, error) {
	date, err := t.resolveDate(date)
	if err != nil {
		return false, err
	}

	stamp := float64(t.cal.Now().UnixMilli())
	var completed bool
	err = t.mutate("toggle completion", func(state *models.AppState) (bool, error) {
		if i := state.FindLog(habitID, date); i >= 0 {
			state.Logs[i].Completed = !state.Logs[i].Completed
			state.Logs[i].Timestamp = stamp
			completed = state.Logs[i].Completed
			return true, nil
		}
		state.Logs = append(state.Logs, models.HabitLog{
			HabitID:   habitID,
			Date:      date,
			Completed: true,
			Timestamp: stamp,
		})
		completed = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

// IsCompleted reports whether a completed log exists for (habitID, date); "" means today
func (t *Tracker) IsCompleted(habitID, date string) (bool, error) {
	date, err := t.resolveDate(date)
	if err != nil {
		return false, err
	}
	state, err := t.store.Load()
	if err != nil {
		return false, err
	}
	return isCompleted(state, habitID, date), nil
}

func isCompleted(state models.AppState, habitID, date string) bool {
	for _, l := range state.Logs {
		if l.HabitID == habitID && l.Date == date && l.Completed {
			return true
		}
	}
	return false
}

// HabitLogs returns every log of the habit, most recent date first
func (t *Tracker) HabitLogs(habitID string) ([]models.HabitLog, error) {
	state, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	return logsFor(state, habitID), nil
}

func logsFor(state models.AppState, habitID string) []models.HabitLog {
	logs := []models.HabitLog{}
	for _, l := range state.Logs {
		if l.HabitID == habitID {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})
	return logs
}

// PruneOrphanLogs drops logs whose habit no longer exists and returns how many went
func (t *Tracker) PruneOrphanLogs() (int, error) {
	removed := 0
	err := t.mutate("prune orphan logs", func(state *models.AppState) (bool, error) {
		known := make(map[string]bool, len(state.Habits))
		for _, h := range state.Habits {
			known[h.ID] = true
		}
		logs := state.Logs[:0]
		for _, l := range state.Logs {
			if known[l.HabitID] {
				logs = append(logs, l)
			} else {
				removed++
			}
		}
		state.Logs = logs
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
