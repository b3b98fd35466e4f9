package habits

import (
	"fmt"
	"strings"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Done    HabitDoneCmd    `cmd:"" help:"Toggle a habit's completion for a day."`
	Logs    HabitLogsCmd    `cmd:"" help:"Show a habit's completion logs."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Restore HabitRestoreCmd `cmd:"" help:"Move an archived habit back to the active list."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and all of its logs."`
	Seed    HabitSeedCmd    `cmd:"" help:"Add the starter habits."`
}

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name (1-50 characters). Omit to fill in a form."`
	Emoji     string `help:"Emoji shown next to the habit." default:"✅"`
	Color     string `help:"Color tag: emerald, blue, purple, orange, rose or amber." default:"emerald"`
	Frequency string `help:"daily, weekly or custom." default:"daily"`
	Target    int    `help:"Times per week for weekly habits." default:"0"`
	Days      string `help:"Weekdays for custom habits (e.g. mon,wed,fri or 1,3,5)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		if err := c.fillFromForm(); err != nil {
			return err
		}
	}

	freq, err := cli.BuildFrequency(c.Frequency, c.Target, c.Days)
	if err != nil {
		return err
	}

	id, err := ctx.Tracker.AddHabit(models.HabitInput{
		Name:      c.Name,
		Emoji:     c.Emoji,
		Color:     constants.Color(strings.ToLower(c.Color)),
		Frequency: freq,
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added habit %s %s (%s)\n", c.Emoji, strings.TrimSpace(c.Name), id)
	return nil
}

type HabitEditCmd struct {
	Habit     string  `arg:"" help:"Habit ID or name."`
	Name      *string `help:"New name."`
	Emoji     *string `help:"New emoji."`
	Color     *string `help:"New color tag."`
	Frequency string  `help:"New frequency: daily, weekly or custom."`
	Target    int     `help:"Times per week for weekly habits." default:"0"`
	Days      string  `help:"Weekdays for custom habits."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	update := models.HabitUpdate{
		Name:  c.Name,
		Emoji: c.Emoji,
	}
	if c.Color != nil {
		color := constants.Color(strings.ToLower(*c.Color))
		update.Color = &color
	}
	if c.Frequency != "" {
		freq, err := cli.BuildFrequency(c.Frequency, c.Target, c.Days)
		if err != nil {
			return err
		}
		update.Frequency = &freq
	}

	if update.IsEmpty() {
		ctx.Println("Nothing to update.")
		return nil
	}

	if err := ctx.Tracker.EditHabit(habit.ID, update); err != nil {
		return err
	}

	ctx.Printf("✓ Updated habit %s\n", habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool   `help:"List archived habits instead of active ones."`
	Output   string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	var (
		habits []models.Habit
		err    error
	)
	if c.Archived {
		habits, err = ctx.Tracker.ArchivedHabits()
	} else {
		habits, err = ctx.Tracker.ActiveHabits()
	}
	if err != nil {
		return err
	}
	if habits == nil {
		habits = []models.Habit{}
	}

	return ctx.Render(c.Output, habits, func() error {
		if len(habits) == 0 {
			ctx.Println("No habits found.")
			return nil
		}

		today := ctx.Tracker.Calendar().Today()
		for _, h := range habits {
			done, err := ctx.Tracker.IsCompleted(h.ID, today)
			if err != nil {
				return err
			}
			status := "[ ]"
			if done {
				status = "[x]"
			}
			name := cli.HabitStyle(h.Color).Render(h.Name)
			ctx.Printf("%s %s %s  %s  %s\n", status, h.Emoji, name, cli.MutedStyle.Render(h.Frequency.String()), cli.MutedStyle.Render(h.ID))
		}
		return nil
	})
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	completed, err := ctx.Tracker.ToggleCompletion(habit.ID, c.Date)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Tracker.Calendar().Today()
	}
	if completed {
		ctx.Printf("✓ Marked %q done for %s\n", habit.Name, day)
	} else {
		ctx.Printf("Unmarked %q for %s\n", habit.Name, day)
	}
	return nil
}

type HabitLogsCmd struct {
	Habit  string `arg:"" help:"Habit ID or name."`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *HabitLogsCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	logs, err := ctx.Tracker.HabitLogs(habit.ID)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []models.HabitLog{}
	}

	return ctx.Render(c.Output, logs, func() error {
		if len(logs) == 0 {
			ctx.Printf("No logs for %q.\n", habit.Name)
			return nil
		}
		ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s", habit.Emoji, habit.Name)))
		for _, l := range logs {
			mark := "❌"
			if l.Completed {
				mark = "✓"
			}
			ctx.Printf("  %s  %s\n", l.Date, mark)
		}
		return nil
	})
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if habit.Archived {
		ctx.Printf("Habit %q is already archived.\n", habit.Name)
		return nil
	}
	if err := ctx.Tracker.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Archived habit %q\n", habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !habit.Archived {
		ctx.Printf("Habit %q is not archived.\n", habit.Name)
		return nil
	}

	active := false
	if err := ctx.Tracker.EditHabit(habit.ID, models.HabitUpdate{Archived: &active}); err != nil {
		return err
	}
	ctx.Printf("✓ Restored habit %q\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	ok, err := ctx.Ask(c.Yes,
		fmt.Sprintf("Delete %q?", habit.Name),
		"The habit and every completion log for it will be removed. This cannot be undone.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted habit %q\n", habit.Name)
	return nil
}

type HabitSeedCmd struct{}

func (c *HabitSeedCmd) Run(ctx *cli.Context) error {
	ids, err := ctx.Tracker.SeedDefaultHabits()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added %d starter habits\n", len(ids))
	return nil
}
