package tracker

import (
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

// DailyCounts returns the number of completed logs across all habits on each
// of dates, in the same order
func (t *Tracker) DailyCounts(dates []string) ([]models.DayCount, error) {
	state, err := t.store.Load()
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int, len(dates))
	for _, l := range state.Logs {
		if l.Completed {
			perDay[l.Date]++
		}
	}

	counts := make([]models.DayCount, len(dates))
	for i, d := range dates {
		counts[i] = models.DayCount{Date: d, Count: perDay[d]}
	}
	return counts, nil
}

// Heatmap returns daily counts over full weeks ending on the last day of the
// current week, honouring the weekStartsOn setting
func (t *Tracker) Heatmap(weeks int) ([]models.DayCount, error) {
	if weeks <= 0 {
		weeks = constants.DefaultHeatmapWeeks
	}
	state, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	return t.DailyCounts(t.cal.HeatmapWindow(weeks, state.Settings.WeekStartsOn))
}

// WeeklyChart returns daily counts for the last seven days, oldest first
func (t *Tracker) WeeklyChart() ([]models.DayCount, error) {
	return t.DailyCounts(t.cal.LastNDays(constants.SparklineDays))
}

// TodaySummary reports how many active habits are completed today
func (t *Tracker) TodaySummary() (models.TodaySummary, error) {
	state, err := t.store.Load()
	if err != nil {
		return models.TodaySummary{}, err
	}

	today := t.cal.Today()
	active := habitsWhere(state, false)
	summary := models.TodaySummary{Date: today, Total: len(active)}
	for _, h := range active {
		if isCompleted(state, h.ID, today) {
			summary.Completed++
		}
	}
	summary.Rate = percent(summary.Completed, summary.Total)
	return summary, nil
}

// Overview sums current and max streaks over the active habits
func (t *Tracker) Overview() (models.Overview, error) {
	state, err := t.store.Load()
	if err != nil {
		return models.Overview{}, err
	}

	today := t.cal.Today()
	active := habitsWhere(state, false)
	overview := models.Overview{
		ActiveHabits:   len(active),
		ArchivedHabits: len(state.Habits) - len(active),
	}
	for _, h := range active {
		stats := ComputeStats(logsFor(state, h.ID), today)
		overview.TotalCurrentStreak += stats.CurrentStreak
		overview.TotalMaxStreak += stats.MaxStreak
	}
	return overview, nil
}

// Settings returns the stored settings
func (t *Tracker) Settings() (models.AppSettings, error) {
	state, err := t.store.Load()
	if err != nil {
		return models.AppSettings{}, err
	}
	return state.Settings, nil
}

// UpdateSettings merges the non-nil fields of update into the settings
func (t *Tracker) UpdateSettings(update models.SettingsUpdate) (models.AppSettings, error) {
	var merged models.AppSettings
	err := t.mutate("update settings", func(state *models.AppState) (bool, error) {
		next := state.Settings
		if update.Theme != nil {
			next.Theme = *update.Theme
		}
		if update.WeekStartsOn != nil {
			next.WeekStartsOn = *update.WeekStartsOn
		}
		if err := next.Validate(); err != nil {
			return false, err
		}
		merged = next
		if next == state.Settings {
			return false, nil
		}
		state.Settings = next
		return true, nil
	})
	if err != nil {
		return models.AppSettings{}, err
	}
	return merged, nil
}
