package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
)

// Export serializes the whole document, pretty-printed
func (t *Tracker) Export() (string, error) {
	state, err := t.store.Load()
	if err != nil {
		return "", err
	}
	data, err := document.Encode(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportFilename is the suggested file name for an export made on today
func ExportFilename(today string) string {
	return constants.ExportFilePrefix + today + ".json"
}

// ExportFilename is the suggested file name for an export made now
func (t *Tracker) ExportFilename() string {
	return ExportFilename(t.cal.Today())
}

// Import replaces the whole document with text, stamped with the current
// version. Text that is not JSON fails with ErrMalformedDocument; a document
// without habits, logs and settings fails with ErrInvalidShape. The content
// is otherwise trusted, including logs of unknown habits. On failure the
// stored document is untouched.
func (t *Tracker) Import(text string) error {
	state, err := ParseDocument([]byte(text))
	if err != nil {
		logger.Warn("Import rejected", "error", err)
		return err
	}

	if err := t.store.Save(state); err != nil {
		return err
	}
	logger.Debug("Imported document", "habits", len(state.Habits), "logs", len(state.Logs))
	return nil
}

// ParseDocument checks and decodes import text without touching any store
func ParseDocument(data []byte) (models.AppState, error) {
	if !json.Valid(data) {
		return models.AppState{}, ErrMalformedDocument
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return models.AppState{}, fmt.Errorf("%w: top level is not an object", ErrInvalidShape)
	}
	for _, key := range []string{"habits", "logs", "settings"} {
		raw, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.AppState{}, fmt.Errorf("%w: missing %q", ErrInvalidShape, key)
		}
	}

	state, err := document.Decode(data)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	state.Version = constants.CurrentVersion
	return state, nil
}
