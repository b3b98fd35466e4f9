// Package calendar does day arithmetic on YYYY-MM-DD strings.
//
// Days are stepped on the calendar, never by wall-clock durations, so results
// do not depend on DST transitions. Only Today consults the clock.
package calendar

import (
	"fmt"
	"time"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time in its Location (time.Local when nil)
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// FixedDate returns a clock pinned to noon of the given YYYY-MM-DD day.
// It panics on a malformed date and is meant for tests and tooling.
func FixedDate(date string) FixedClock {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return FixedClock(t.Add(12 * time.Hour))
}

// Calendar answers date questions relative to its clock
type Calendar struct {
	clock Clock
}

// New creates a calendar; a nil clock means the system clock
func New(clock Clock) *Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calendar{clock: clock}
}

// Now returns the clock's current instant
func (c *Calendar) Now() time.Time {
	return c.clock.Now()
}

// Today returns the current local date as YYYY-MM-DD
func (c *Calendar) Today() string {
	return c.clock.Now().Format(constants.DateFormat)
}

// Yesterday returns the day before Today
func (c *Calendar) Yesterday() string {
	return shift(c.todayDate(), -1)
}

// LastNDays returns the n days ending today, oldest first
func (c *Calendar) LastNDays(n int) []string {
	if n <= 0 {
		return []string{}
	}
	today := c.todayDate()
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = shift(today, i-(n-1))
	}
	return days
}

// HeatmapWindow returns weeks*7 days, oldest first, ending on the last day of
// the current week. weekStartsOn is 0 (Sunday) or 1 (Monday), so the window
// ends on Saturday or Sunday respectively and may include days after today.
func (c *Calendar) HeatmapWindow(weeks, weekStartsOn int) []string {
	if weeks <= 0 {
		return []string{}
	}
	today := c.todayDate()
	lastDay := (weekStartsOn + 6) % 7
	offset := (lastDay - int(today.Weekday()) + 7) % 7
	end := today.AddDate(0, 0, offset)

	total := weeks * 7
	days := make([]string, total)
	for i := 0; i < total; i++ {
		days[i] = shift(end, i-(total-1))
	}
	return days
}

func (c *Calendar) todayDate() time.Time {
	now := c.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string to midnight UTC of that day
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}

// ValidateDate checks that the string is a real calendar day in YYYY-MM-DD form
func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// DaysBetween returns the absolute number of whole days between two dates
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	diff := int(tb.Sub(ta).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

// AddDays shifts a date by n calendar days (n may be negative)
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return shift(t, n), nil
}

// Weekday returns the weekday of a date (0=Sunday..6=Saturday)
func Weekday(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func shift(t time.Time, n int) string {
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}
