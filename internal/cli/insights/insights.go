package insights

import (
	"fmt"
	"strings"

	"github.com/jrr00064/habit-tracker/internal/calendar"
	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/models"
)

type StatsCmd struct {
	Habit  string `arg:"" optional:"" help:"Habit ID or name. Omit for every active habit."`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

// habitReport pairs a habit with its derived statistics for structured output
type habitReport struct {
	ID    string            `json:"id" yaml:"id"`
	Name  string            `json:"name" yaml:"name"`
	Stats models.HabitStats `json:"stats" yaml:"stats"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	var habits []models.Habit
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	} else {
		active, err := ctx.Tracker.ActiveHabits()
		if err != nil {
			return err
		}
		habits = active
	}

	reports := make([]habitReport, 0, len(habits))
	for _, h := range habits {
		stats, err := ctx.Tracker.HabitStats(h.ID)
		if err != nil {
			return err
		}
		reports = append(reports, habitReport{ID: h.ID, Name: h.Name, Stats: stats})
	}

	return ctx.Render(c.Output, reports, func() error {
		if len(reports) == 0 {
			ctx.Println("No habits found.")
			return nil
		}
		for i, r := range reports {
			h := habits[i]
			ctx.Printf("%s %s\n", h.Emoji, cli.HabitStyle(h.Color).Render(h.Name))
			ctx.Printf("  Current streak: %d day(s)\n", r.Stats.CurrentStreak)
			ctx.Printf("  Best streak:    %d day(s)\n", r.Stats.MaxStreak)
			ctx.Printf("  Last 30 days:   %d%%\n", r.Stats.CompletionRate)
			ctx.Printf("  Last 7 days:    %s\n", cli.Sparkline(r.Stats.Last7Days, h.Color))
		}
		return nil
	})
}

type TodayCmd struct {
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	summary, err := ctx.Tracker.TodaySummary()
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, summary, func() error {
		habits, err := ctx.Tracker.ActiveHabits()
		if err != nil {
			return err
		}

		ctx.Println(cli.TitleStyle.Render("Habits for " + summary.Date))
		ctx.Println()
		for _, h := range habits {
			done, err := ctx.Tracker.IsCompleted(h.ID, summary.Date)
			if err != nil {
				return err
			}
			status := "[ ]"
			if done {
				status = "[x]"
			}
			ctx.Printf("%s %s %s\n", status, h.Emoji, cli.HabitStyle(h.Color).Render(h.Name))
		}
		ctx.Printf("\nCompleted: %d/%d (%d%%)\n", summary.Completed, summary.Total, summary.Rate)
		return nil
	})
}

type HeatmapCmd struct {
	Weeks  int    `help:"Number of weeks to show." default:"12"`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	if c.Weeks < 0 {
		return fmt.Errorf("weeks must be positive, got %d", c.Weeks)
	}

	counts, err := ctx.Tracker.Heatmap(c.Weeks)
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, counts, func() error {
		renderHeatmap(ctx, counts)
		return nil
	})
}

// renderHeatmap draws one row per weekday and one column per week. The window
// always starts on the first day of a week, so column i covers counts[7i:7i+7].
func renderHeatmap(ctx *cli.Context, counts []models.DayCount) {
	if len(counts) == 0 {
		return
	}

	busiest := 0
	for _, dc := range counts {
		if dc.Count > busiest {
			busiest = dc.Count
		}
	}

	weeks := (len(counts) + 6) / 7
	for row := 0; row < 7; row++ {
		label := "   "
		if row < len(counts) {
			if wd, err := calendar.Weekday(counts[row].Date); err == nil {
				label = wd.String()[:3]
			}
		}

		var b strings.Builder
		b.WriteString(cli.MutedStyle.Render(label))
		b.WriteString(" ")
		for week := 0; week < weeks; week++ {
			i := week*7 + row
			if i >= len(counts) {
				b.WriteString(" ")
				continue
			}
			b.WriteString(cli.HeatCell(counts[i].Count, busiest))
		}
		ctx.Println(b.String())
	}
	ctx.Printf("\n%s to %s, busiest day: %d\n", counts[0].Date, counts[len(counts)-1].Date, busiest)
}

type ChartCmd struct {
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *ChartCmd) Run(ctx *cli.Context) error {
	counts, err := ctx.Tracker.WeeklyChart()
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, counts, func() error {
		for _, dc := range counts {
			label := dc.Date
			if wd, err := calendar.Weekday(dc.Date); err == nil {
				label = wd.String()[:3] + " " + dc.Date
			}
			bar := cli.SuccessStyle.Render(strings.Repeat("█", dc.Count))
			ctx.Printf("%s %s %d\n", label, bar, dc.Count)
		}
		return nil
	})
}

type OverviewCmd struct {
	Output string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *OverviewCmd) Run(ctx *cli.Context) error {
	overview, err := ctx.Tracker.Overview()
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, overview, func() error {
		ctx.Println(cli.TitleStyle.Render("Overview"))
		ctx.Printf("Active habits:         %d\n", overview.ActiveHabits)
		ctx.Printf("Archived habits:       %d\n", overview.ArchivedHabits)
		ctx.Printf("Total current streak:  %d\n", overview.TotalCurrentStreak)
		ctx.Printf("Total best streak:     %d\n", overview.TotalMaxStreak)
		return nil
	})
}
