package habits

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

// fillFromForm prompts for the fields of a new habit
func (c *HabitAddCmd) fillFromForm() error {
	target := strconv.Itoa(c.Target)
	colors := []constants.Color{
		constants.ColorEmerald, constants.ColorBlue, constants.ColorPurple,
		constants.ColorOrange, constants.ColorRose, constants.ColorAmber,
	}
	colorOptions := make([]huh.Option[string], 0, len(colors))
	for _, col := range colors {
		colorOptions = append(colorOptions, huh.NewOption(string(col), string(col)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Value(&c.Emoji),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&c.Color),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(constants.FrequencyDaily)),
					huh.NewOption("Weekly", string(constants.FrequencyWeekly)),
					huh.NewOption("Custom days", string(constants.FrequencyCustom)),
				).
				Value(&c.Frequency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Times per week").
				Value(&target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 7 {
						return fmt.Errorf("enter a number between 1 and 7")
					}
					return nil
				}),
		).WithHideFunc(func() bool {
			return c.Frequency != string(constants.FrequencyWeekly)
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Days").
				Description("e.g. mon,wed,fri").
				Value(&c.Days),
		).WithHideFunc(func() bool {
			return c.Frequency != string(constants.FrequencyCustom)
		}),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return fmt.Errorf("habit form aborted: %w", err)
	}

	if c.Frequency == string(constants.FrequencyWeekly) {
		n, err := strconv.Atoi(target)
		if err != nil {
			return fmt.Errorf("invalid weekly target: %w", err)
		}
		c.Target = n
	}
	return nil
}
