package models

import (
	"fmt"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

// AppSettings holds presentation preferences. The engine passes them through untouched.
type AppSettings struct {
	Theme        constants.Theme `json:"theme" yaml:"theme"`
	WeekStartsOn int             `json:"weekStartsOn" yaml:"weekStartsOn"`
}

// DefaultSettings returns the settings of a fresh document
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:        constants.DefaultTheme,
		WeekStartsOn: constants.DefaultWeekStartsOn,
	}
}

func (s AppSettings) Validate() error {
	switch s.Theme {
	case constants.ThemeLight, constants.ThemeDark, constants.ThemeSystem:
	default:
		return fmt.Errorf("invalid theme %q (expected light, dark or system)", s.Theme)
	}
	if s.WeekStartsOn != 0 && s.WeekStartsOn != 1 {
		return fmt.Errorf("invalid weekStartsOn %d (expected 0 or 1)", s.WeekStartsOn)
	}
	return nil
}

// SettingsUpdate carries the settings fields to merge; nil fields are left untouched
type SettingsUpdate struct {
	Theme        *constants.Theme
	WeekStartsOn *int
}
