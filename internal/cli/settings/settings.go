package settings

import (
	"fmt"
	"strings"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme        *string `help:"Color theme: light, dark or system."`
	WeekStartsOn *string `help:"First day of the week: sunday or monday (or 0/1)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	update := models.SettingsUpdate{}
	if c.Theme != nil {
		theme := constants.Theme(strings.ToLower(strings.TrimSpace(*c.Theme)))
		update.Theme = &theme
	}
	if c.WeekStartsOn != nil {
		day, err := parseWeekStart(*c.WeekStartsOn)
		if err != nil {
			return err
		}
		update.WeekStartsOn = &day
	}

	if update.Theme == nil && update.WeekStartsOn == nil {
		if !c.List {
			ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
			return nil
		}
		settings, err := ctx.Tracker.Settings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		printSettings(ctx, settings)
		return nil
	}

	settings, err := ctx.Tracker.UpdateSettings(update)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	printSettings(ctx, settings)
	return nil
}

func printSettings(ctx *cli.Context, settings models.AppSettings) {
	weekStart := "Monday"
	if settings.WeekStartsOn == 0 {
		weekStart = "Sunday"
	}
	ctx.Println("Current Settings:")
	ctx.Printf("  Theme:           %s\n", settings.Theme)
	ctx.Printf("  Week Starts On:  %s\n", weekStart)
}

func parseWeekStart(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "sun", "sunday":
		return 0, nil
	case "1", "mon", "monday":
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid week start %q (expected sunday or monday)", s)
	}
}
