// Package document encodes the persisted AppState. Every storage backend
// stores exactly these bytes.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

var (
	// ErrUnavailable marks failures of the underlying storage medium (I/O, database)
	ErrUnavailable = errors.New("storage unavailable")
	// ErrAlreadyInitialized is returned by Init when a document is already stored
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// Encode serializes the document pretty-printed with two-space indentation
func Encode(state models.AppState) ([]byte, error) {
	state.Normalize()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// Decode parses stored bytes. Missing collections become empty and missing
// settings or version fall back to defaults; unparsable input is an error.
func Decode(data []byte) (models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to parse document: %w", err)
	}
	state.Normalize()
	if state.Version == "" {
		state.Version = constants.CurrentVersion
	}
	if state.Settings.Theme == "" {
		state.Settings.Theme = constants.DefaultTheme
	}
	return state, nil
}
