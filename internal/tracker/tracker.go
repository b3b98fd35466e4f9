// Package tracker is the habit state engine: registry, completion log,
// statistics and the import/export codec over one persisted AppState.
//
// Every mutation loads the whole document, changes it and saves it back in a
// single write. A mutation that finds nothing to change does not write.
// The engine is not safe for concurrent use.
package tracker

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jrr00064/habit-tracker/internal/calendar"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/validation"
)

var (
	// ErrHabitNotFound is returned by lookups of a single habit. Mutators treat
	// an unknown id as a no-op instead.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrMalformedDocument is returned when import text is not parseable JSON
	ErrMalformedDocument = errors.New("document is not valid JSON")
	// ErrInvalidShape is returned when an import document lacks habits, logs or settings
	ErrInvalidShape = errors.New("document must contain habits, logs and settings")
)

// Tracker owns a storage provider and applies habit operations to it
type Tracker struct {
	store     storage.Provider
	cal       *calendar.Calendar
	validator *validation.Validator
	newID     func() string
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock sets the clock used for "today" and log timestamps
func WithClock(clock calendar.Clock) Option {
	return func(t *Tracker) {
		t.cal = calendar.New(clock)
	}
}

// WithIDGenerator replaces the UUID generator for new habits
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) {
		t.newID = fn
	}
}

// New creates a tracker over store
func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		cal:       calendar.New(nil),
		validator: validation.New(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Calendar returns the calendar the tracker computes dates with
func (t *Tracker) Calendar() *calendar.Calendar {
	return t.cal
}

// Store returns the underlying provider
func (t *Tracker) Store() storage.Provider {
	return t.store
}

// State returns a copy of the whole document
func (t *Tracker) State() (models.AppState, error) {
	return t.store.Load()
}

// mutate runs fn on the loaded document and saves it when fn reports a change
func (t *Tracker) mutate(op string, fn func(state *models.AppState) (bool, error)) error {
	state, err := t.store.Load()
	if err != nil {
		return err
	}

	changed, err := fn(&state)
	if err != nil {
		return err
	}
	if !changed {
		logger.Debug("No change", "op", op)
		return nil
	}

	if err := t.store.Save(state); err != nil {
		return err
	}
	logger.Debug("Persisted mutation", "op", op, "habits", len(state.Habits), "logs", len(state.Logs))
	return nil
}
