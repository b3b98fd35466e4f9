package tracker

import (
	"fmt"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/validation"
)

// AddHabit validates input, stores a new active habit created today and
// returns its id. A zero frequency defaults to daily.
func (t *Tracker) AddHabit(input models.HabitInput) (string, error) {
	if input.Frequency.Type == "" {
		input.Frequency = models.Daily()
	}
	if err := t.validator.ValidateHabitInput(input); err != nil {
		return "", err
	}

	habit := models.Habit{
		ID:        t.newID(),
		Name:      validation.NormalizeName(input.Name),
		Emoji:     input.Emoji,
		Color:     input.Color,
		Frequency: input.Frequency,
		CreatedAt: t.cal.Today(),
		Archived:  false,
	}

	err := t.mutate("add habit", func(state *models.AppState) (bool, error) {
		state.Habits = append(state.Habits, habit)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return habit.ID, nil
}

// EditHabit merges the non-nil fields of update into every habit with the
// given id. An unknown id is a no-op, not an error.
func (t *Tracker) EditHabit(id string, update models.HabitUpdate) error {
	if err := t.validator.ValidateHabitUpdate(update); err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}

	return t.mutate("edit habit", func(state *models.AppState) (bool, error) {
		changed := false
		for i := range state.Habits {
			h := &state.Habits[i]
			if h.ID != id {
				continue
			}
			if update.Name != nil {
				h.Name = validation.NormalizeName(*update.Name)
			}
			if update.Emoji != nil {
				h.Emoji = *update.Emoji
			}
			if update.Color != nil {
				h.Color = *update.Color
			}
			if update.Frequency != nil {
				h.Frequency = *update.Frequency
			}
			if update.Archived != nil {
				h.Archived = *update.Archived
			}
			changed = true
		}
		return changed, nil
	})
}

// ArchiveHabit flips the archived flag, so it also un-archives. An unknown id
// is a no-op.
func (t *Tracker) ArchiveHabit(id string) error {
	return t.mutate("archive habit", func(state *models.AppState) (bool, error) {
		changed := false
		for i := range state.Habits {
			if state.Habits[i].ID == id {
				state.Habits[i].Archived = !state.Habits[i].Archived
				changed = true
			}
		}
		return changed, nil
	})
}

// DeleteHabit removes every habit with the id and all of its logs in one
// write. An unknown id is a no-op.
func (t *Tracker) DeleteHabit(id string) error {
	return t.mutate("delete habit", func(state *models.AppState) (bool, error) {
		habits := state.Habits[:0]
		for _, h := range state.Habits {
			if h.ID != id {
				habits = append(habits, h)
			}
		}
		if len(habits) == len(state.Habits) {
			return false, nil
		}
		state.Habits = habits

		logs := state.Logs[:0]
		for _, l := range state.Logs {
			if l.HabitID != id {
				logs = append(logs, l)
			}
		}
		state.Logs = logs
		return true, nil
	})
}

// ActiveHabits returns the habits that are not archived, in insertion order
func (t *Tracker) ActiveHabits() ([]models.Habit, error) {
	return t.filterHabits(false)
}

// ArchivedHabits returns the archived habits, in insertion order
func (t *Tracker) ArchivedHabits() ([]models.Habit, error) {
	return t.filterHabits(true)
}

func (t *Tracker) filterHabits(archived bool) ([]models.Habit, error) {
	state, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	return habitsWhere(state, archived), nil
}

func habitsWhere(state models.AppState, archived bool) []models.Habit {
	habits := []models.Habit{}
	for _, h := range state.Habits {
		if h.Archived == archived {
			habits = append(habits, h)
		}
	}
	return habits
}

// Habit returns the habit with the given id
func (t *Tracker) Habit(id string) (models.Habit, error) {
	state, err := t.store.Load()
	if err != nil {
		return models.Habit{}, err
	}
	i := state.FindHabit(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return state.Habits[i], nil
}

// SeedDefaultHabits adds the starter habits and returns their ids
func (t *Tracker) SeedDefaultHabits() ([]string, error) {
	starters := []models.HabitInput{
		{Name: "Drink 2L of water", Emoji: "💧", Color: constants.ColorBlue, Frequency: models.Daily()},
		{Name: "Exercise 30 min", Emoji: "🏃", Color: constants.ColorEmerald, Frequency: models.Daily()},
		{Name: "Meditate 10 min", Emoji: "🧘", Color: constants.ColorPurple, Frequency: models.Daily()},
		{Name: "Read 30 min", Emoji: "📚", Color: constants.ColorAmber, Frequency: models.Daily()},
		{Name: "Sleep 8 hours", Emoji: "😴", Color: constants.ColorRose, Frequency: models.Daily()},
	}

	today := t.cal.Today()
	ids := make([]string, 0, len(starters))
	err := t.mutate("seed habits", func(state *models.AppState) (bool, error) {
		for _, in := range starters {
			id := t.newID()
			state.Habits = append(state.Habits, models.Habit{
				ID:        id,
				Name:      in.Name,
				Emoji:     in.Emoji,
				Color:     in.Color,
				Frequency: in.Frequency,
				CreatedAt: today,
			})
			ids = append(ids, id)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
