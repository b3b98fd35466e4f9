package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/jrr00064/habit-tracker/internal/backup"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/tracker"
)

// Context is handed to every command's Run method
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Out     io.Writer
	// Confirm asks a yes/no question; nil means an interactive huh prompt
	Confirm func(title, description string) (bool, error)
}

// NewContext wires a tracker over store writing to stdout
func NewContext(store storage.Provider, opts ...tracker.Option) *Context {
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Out:     os.Stdout,
	}
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Ask asks for confirmation unless skip is set
func (c *Context) Ask(skip bool, title, description string) (bool, error) {
	if skip {
		return true, nil
	}
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return ok, nil
}

// PerformAutomaticBackup snapshots a file store before destructive commands.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Output formats accepted by --output
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Render writes v as JSON or YAML, or calls text for the human format
func (c *Context) Render(format string, v interface{}, text func() error) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		c.Println(string(data))
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(c.out())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		return enc.Close()
	default:
		return text()
	}
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday..6=Saturday)
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		day, ok := dayMap[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			day = num
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}

// ResolveHabit finds a habit by id, falling back to a case-insensitive name match
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	h, err := c.Tracker.Habit(ref)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, tracker.ErrHabitNotFound) {
		return models.Habit{}, err
	}

	state, err := c.Tracker.State()
	if err != nil {
		return models.Habit{}, err
	}
	want := strings.ToLower(strings.TrimSpace(ref))
	for _, h := range state.Habits {
		if strings.ToLower(h.Name) == want {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, ref)
}

// BuildFrequency assembles a frequency from command flags
func BuildFrequency(kind string, target int, days string) (models.Frequency, error) {
	switch constants.FrequencyType(strings.ToLower(kind)) {
	case "", constants.FrequencyDaily:
		return models.Daily(), nil
	case constants.FrequencyWeekly:
		return models.Weekly(target), nil
	case constants.FrequencyCustom:
		parsed, err := ParseWeekdays(days)
		if err != nil {
			return models.Frequency{}, err
		}
		return models.Custom(parsed...), nil
	default:
		return models.Frequency{}, fmt.Errorf("invalid frequency %q (expected daily, weekly or custom)", kind)
	}
}
