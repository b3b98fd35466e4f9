package models

import "github.com/jrr00064/habit-tracker/internal/constants"

// AppState is the single root document: the unit of persistence and of import/export
type AppState struct {
	Version  string      `json:"version" yaml:"version"`
	Habits   []Habit     `json:"habits" yaml:"habits"`
	Logs     []HabitLog  `json:"logs" yaml:"logs"`
	Settings AppSettings `json:"settings" yaml:"settings"`
}

// DefaultState returns the empty document used when nothing has been stored yet
func DefaultState() AppState {
	return AppState{
		Version:  constants.CurrentVersion,
		Habits:   []Habit{},
		Logs:     []HabitLog{},
		Settings: DefaultSettings(),
	}
}

// Clone returns a copy that shares no slices with s
func (s AppState) Clone() AppState {
	out := AppState{
		Version:  s.Version,
		Habits:   make([]Habit, len(s.Habits)),
		Logs:     make([]HabitLog, len(s.Logs)),
		Settings: s.Settings,
	}
	for i, h := range s.Habits {
		if h.Frequency.Days != nil {
			h.Frequency.Days = append([]int(nil), h.Frequency.Days...)
		}
		out.Habits[i] = h
	}
	copy(out.Logs, s.Logs)
	return out
}

// Normalize replaces nil collections so the document always serializes as arrays
func (s *AppState) Normalize() {
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Logs == nil {
		s.Logs = []HabitLog{}
	}
}

// FindHabit returns the index of the habit with the given id, or -1
func (s AppState) FindHabit(id string) int {
	for i, h := range s.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// FindLog returns the index of the log for (habitID, date), or -1
func (s AppState) FindLog(habitID, date string) int {
	for i, l := range s.Logs {
		if l.HabitID == habitID && l.Date == date {
			return i
		}
	}
	return -1
}
