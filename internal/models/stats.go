package models

// HabitStats is derived on demand from a habit's logs
type HabitStats struct {
	CurrentStreak  int   `json:"currentStreak" yaml:"currentStreak"`
	MaxStreak      int   `json:"maxStreak" yaml:"maxStreak"`
	CompletionRate int   `json:"completionRate" yaml:"completionRate"` // percent of the last 30 days
	Last7Days      []int `json:"last7Days" yaml:"last7Days"`           // oldest first, 0 or 1
}

// DayCount is the number of completed logs across all habits on one day
type DayCount struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// TodaySummary is today's progress over the active habits
type TodaySummary struct {
	Date      string `json:"date" yaml:"date"`
	Completed int    `json:"completed" yaml:"completed"`
	Total     int    `json:"total" yaml:"total"`
	Rate      int    `json:"rate" yaml:"rate"`
}

// Overview aggregates streaks over the active habits
type Overview struct {
	ActiveHabits       int `json:"activeHabits" yaml:"activeHabits"`
	ArchivedHabits     int `json:"archivedHabits" yaml:"archivedHabits"`
	TotalCurrentStreak int `json:"totalCurrentStreak" yaml:"totalCurrentStreak"`
	TotalMaxStreak     int `json:"totalMaxStreak" yaml:"totalMaxStreak"`
}
