package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var habitColors = map[constants.Color]lipgloss.Color{
	constants.ColorEmerald: lipgloss.Color("42"),
	constants.ColorBlue:    lipgloss.Color("33"),
	constants.ColorPurple:  lipgloss.Color("135"),
	constants.ColorOrange:  lipgloss.Color("208"),
	constants.ColorRose:    lipgloss.Color("204"),
	constants.ColorAmber:   lipgloss.Color("214"),
}

// HabitStyle colors text with the habit's color tag
func HabitStyle(color constants.Color) lipgloss.Style {
	c, ok := habitColors[color]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// heat levels from no activity to busiest day
var heatLevels = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

// HeatCell renders one heatmap square for count relative to peak
func HeatCell(count, peak int) string {
	level := 0
	if count > 0 && peak > 0 {
		level = 1 + (count*(len(heatLevels)-2))/peak
		if level >= len(heatLevels) {
			level = len(heatLevels) - 1
		}
	}
	return heatLevels[level].Render("■")
}

// Sparkline renders a 0/1 series as filled and empty dots
func Sparkline(series []int, color constants.Color) string {
	on := HabitStyle(color)
	out := ""
	for _, v := range series {
		if v > 0 {
			out += on.Render("●")
		} else {
			out += MutedStyle.Render("○")
		}
	}
	return out
}
