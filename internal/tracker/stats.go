package tracker

import (
	"math"
	"sort"

	"github.com/jrr00064/habit-tracker/internal/calendar"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

// HabitStats computes the statistics of one habit from its full log set.
// An unknown habit, like one without logs, yields all zeros.
func (t *Tracker) HabitStats(habitID string) (models.HabitStats, error) {
	state, err := t.store.Load()
	if err != nil {
		return models.HabitStats{}, err
	}
	return ComputeStats(logsFor(state, habitID), t.cal.Today()), nil
}

// ComputeStats derives streaks, the 30-day completion rate and the 7-day
// series from a habit's logs as seen on today. Frequency is not consulted:
// every habit is scored on consecutive calendar days.
func ComputeStats(logs []models.HabitLog, today string) models.HabitStats {
	done := completedDates(logs)

	stats := models.HabitStats{
		CurrentStreak: currentStreak(done, today),
		MaxStreak:     maxStreak(done),
		Last7Days:     make([]int, constants.SparklineDays),
	}

	for i := range stats.Last7Days {
		if done[dayOffset(today, i-(constants.SparklineDays-1))] {
			stats.Last7Days[i] = 1
		}
	}

	inWindow := 0
	for i := 0; i < constants.CompletionRateWindowDays; i++ {
		if done[dayOffset(today, -i)] {
			inWindow++
		}
	}
	stats.CompletionRate = percent(inWindow, constants.CompletionRateWindowDays)

	return stats
}

func completedDates(logs []models.HabitLog) map[string]bool {
	done := make(map[string]bool, len(logs))
	for _, l := range logs {
		if l.Completed {
			done[l.Date] = true
		}
	}
	return done
}

// currentStreak counts back from today when today is done, otherwise from
// yesterday when yesterday is done; anything older is a broken streak
func currentStreak(done map[string]bool, today string) int {
	start := today
	if !done[start] {
		start = dayOffset(today, -1)
		if !done[start] {
			return 0
		}
	}

	streak := 0
	for d := start; done[d]; d = dayOffset(d, -1) {
		streak++
	}
	return streak
}

// maxStreak is the longest run of consecutive completed dates ever observed
func maxStreak(done map[string]bool) int {
	dates := make([]string, 0, len(done))
	for d := range done {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	best, run := 0, 0
	for i, d := range dates {
		if i > 0 {
			if gap, err := calendar.DaysBetween(dates[i-1], d); err == nil && gap == 1 {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// dayOffset shifts a date; malformed input yields "" which matches no log
func dayOffset(date string, n int) string {
	shifted, err := calendar.AddDays(date, n)
	if err != nil {
		return ""
	}
	return shifted
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
