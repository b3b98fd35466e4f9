package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

// Frequency describes how often a habit is meant to happen.
// Only the field matching Type is meaningful.
type Frequency struct {
	Type         constants.FrequencyType `json:"type" yaml:"type" validate:"required,oneof=daily weekly custom"`
	WeeklyTarget int                     `json:"weeklyTarget,omitempty" yaml:"weeklyTarget,omitempty" validate:"omitempty,min=1,max=7"`
	Days         []int                   `json:"days,omitempty" yaml:"days,omitempty" validate:"omitempty,unique,dive,min=0,max=6"`
}

// Daily returns the parameterless daily frequency
func Daily() Frequency {
	return Frequency{Type: constants.FrequencyDaily}
}

// Weekly returns a frequency of target occurrences per week
func Weekly(target int) Frequency {
	return Frequency{Type: constants.FrequencyWeekly, WeeklyTarget: target}
}

// Custom returns a frequency on explicit weekdays (0=Sunday..6=Saturday)
func Custom(days ...int) Frequency {
	return Frequency{Type: constants.FrequencyCustom, Days: days}
}

// MarshalJSON writes the fields of the active variant. A custom frequency
// always carries its days list, even when it is empty.
func (f Frequency) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type         constants.FrequencyType `json:"type"`
		WeeklyTarget *int                    `json:"weeklyTarget,omitempty"`
		Days         *[]int                  `json:"days,omitempty"`
	}
	w := wire{Type: f.Type}
	if f.Type == constants.FrequencyWeekly || f.WeeklyTarget != 0 {
		target := f.WeeklyTarget
		w.WeeklyTarget = &target
	}
	if f.Type == constants.FrequencyCustom || f.Days != nil {
		days := f.Days
		if days == nil {
			days = []int{}
		}
		w.Days = &days
	}
	return json.Marshal(w)
}

// String formats the frequency into a human-readable string
func (f Frequency) String() string {
	switch f.Type {
	case constants.FrequencyDaily:
		return "daily"
	case constants.FrequencyWeekly:
		return fmt.Sprintf("%d/week", f.WeeklyTarget)
	case constants.FrequencyCustom:
		names := make([]string, 0, len(f.Days))
		for _, d := range f.Days {
			if d >= 0 && d <= 6 {
				names = append(names, time.Weekday(d).String()[:3])
			}
		}
		return "on " + strings.Join(names, ",")
	default:
		return "unknown"
	}
}

// Habit represents a tracked behavior definition
type Habit struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Emoji     string          `json:"emoji" yaml:"emoji"`
	Color     constants.Color `json:"color" yaml:"color"`
	Frequency Frequency       `json:"frequency" yaml:"frequency"`
	CreatedAt string          `json:"createdAt" yaml:"createdAt"` // YYYY-MM-DD
	Archived  bool            `json:"archived" yaml:"archived"`
}

// HabitLog is the completion record of one habit on one calendar day
type HabitLog struct {
	HabitID   string  `json:"habitId" yaml:"habitId"`
	Date      string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Completed bool    `json:"completed" yaml:"completed"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"` // Unix milliseconds of the last mutation; imports may carry fractions
}

// HabitInput is the caller-supplied part of a new habit.
// ID, CreatedAt and Archived are assigned by the registry.
type HabitInput struct {
	Name      string `validate:"required,min=1,max=50"`
	Emoji     string
	Color     constants.Color `validate:"required,oneof=emerald blue purple orange rose amber"`
	Frequency Frequency
}

// HabitUpdate carries the fields to merge into an existing habit.
// Nil fields are left untouched; ID and CreatedAt cannot be changed.
type HabitUpdate struct {
	Name      *string
	Emoji     *string
	Color     *constants.Color
	Frequency *Frequency
	Archived  *bool
}

// IsEmpty reports whether the update would change nothing
func (u HabitUpdate) IsEmpty() bool {
	return u.Name == nil && u.Emoji == nil && u.Color == nil && u.Frequency == nil && u.Archived == nil
}
