package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jrr00064/habit-tracker/internal/calendar"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

// ValidationError reports a single rejected field of habit input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validator guards the registry boundary against degenerate habit input
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	v.RegisterStructValidation(frequencyStructLevel, models.Frequency{})
	return &Validator{validate: v}
}

// NormalizeName trims surrounding whitespace the same way validation measures it
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateHabitInput checks a new habit. The name is measured after trimming.
func (v *Validator) ValidateHabitInput(input models.HabitInput) error {
	input.Name = NormalizeName(input.Name)
	return v.convert(v.validate.Struct(input))
}

// ValidateHabitUpdate checks only the fields present in the update
func (v *Validator) ValidateHabitUpdate(update models.HabitUpdate) error {
	if update.Name != nil {
		name := NormalizeName(*update.Name)
		if err := v.convert(v.validate.Var(name, "required,min=1,max=50")); err != nil {
			return withField(err, "name")
		}
	}
	if update.Color != nil {
		if err := v.convert(v.validate.Var(string(*update.Color), "required,oneof=emerald blue purple orange rose amber")); err != nil {
			return withField(err, "color")
		}
	}
	if update.Frequency != nil {
		if err := v.ValidateFrequency(*update.Frequency); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFrequency checks a frequency variant and its parameters
func (v *Validator) ValidateFrequency(freq models.Frequency) error {
	return v.convert(v.validate.Struct(freq))
}

func frequencyStructLevel(sl validator.StructLevel) {
	freq := sl.Current().Interface().(models.Frequency)
	switch freq.Type {
	case constants.FrequencyWeekly:
		if freq.WeeklyTarget < 1 || freq.WeeklyTarget > 7 {
			sl.ReportError(freq.WeeklyTarget, "weeklyTarget", "WeeklyTarget", "weekly_target", "")
		}
	case constants.FrequencyCustom:
		if len(freq.Days) == 0 {
			sl.ReportError(freq.Days, "days", "Days", "custom_days", "")
		}
	}
}

// fieldName reports fields by their document name
func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name != "" {
		return name
	}
	return strings.ToLower(fld.Name[:1]) + fld.Name[1:]
}

func (v *Validator) convert(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &ValidationError{Field: field, Reason: reason(fe)}
}

func withField(err error, field string) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Field == "" {
		ve.Field = field
	}
	return err
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return "must not repeat a weekday"
	case "weekly_target":
		return "must be between 1 and 7 for weekly habits"
	case "custom_days":
		return "must list at least one weekday for custom habits"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// ConflictType represents the type of document integrity problem
type ConflictType string

const (
	ConflictDuplicateHabitID ConflictType = "duplicate_habit_id"
	ConflictDuplicateLog     ConflictType = "duplicate_log"
	ConflictOrphanLog        ConflictType = "orphan_log"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictInvalidHabit     ConflictType = "invalid_habit"
	ConflictInvalidSettings  ConflictType = "invalid_settings"
)

// Conflict represents a detected integrity problem in a stored document
type Conflict struct {
	Type        ConflictType
	Description string
	HabitID     string
	Date        string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateState checks a whole document. Imported documents are stored without
// this check, so it is what `doctor` reports on.
func (v *Validator) ValidateState(state models.AppState) ValidationResult {
	var result ValidationResult

	if err := state.Settings.Validate(); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: err.Error(),
		})
	}

	habits := make(map[string]bool, len(state.Habits))
	for _, h := range state.Habits {
		if habits[h.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("habit id %s is used more than once", h.ID),
				HabitID:     h.ID,
			})
		}
		habits[h.ID] = true

		input := models.HabitInput{Name: h.Name, Emoji: h.Emoji, Color: h.Color, Frequency: h.Frequency}
		if err := v.ValidateHabitInput(input); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("habit %s: %v", h.ID, err),
				HabitID:     h.ID,
			})
		}
		if !calendar.ValidateDate(h.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("habit %s has invalid createdAt %q", h.ID, h.CreatedAt),
				HabitID:     h.ID,
				Date:        h.CreatedAt,
			})
		}
	}

	seen := make(map[string]bool, len(state.Logs))
	for _, l := range state.Logs {
		key := l.HabitID + "|" + l.Date
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateLog,
				Description: fmt.Sprintf("habit %s has more than one log on %s", l.HabitID, l.Date),
				HabitID:     l.HabitID,
				Date:        l.Date,
			})
		}
		seen[key] = true

		if !habits[l.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanLog,
				Description: fmt.Sprintf("log on %s references missing habit %s", l.Date, l.HabitID),
				HabitID:     l.HabitID,
				Date:        l.Date,
			})
		}
		if !calendar.ValidateDate(l.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("log of habit %s has invalid date %q", l.HabitID, l.Date),
				HabitID:     l.HabitID,
				Date:        l.Date,
			})
		}
	}

	return result
}
