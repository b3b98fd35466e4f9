package storage

import (
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
)

var (
	// ErrStoreUnavailable marks failures of the storage medium. They are never
	// swallowed: the mutation that hit them fails as a whole.
	ErrStoreUnavailable = document.ErrUnavailable
	// ErrAlreadyInitialized is returned by Init when a document already exists
	ErrAlreadyInitialized = document.ErrAlreadyInitialized
)

// Provider persists the single AppState document. Every write replaces the
// whole document; there are no field-level updates at this boundary.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the stored document, or the default empty document when
	// nothing is stored yet or the stored bytes cannot be parsed.
	Load() (models.AppState, error)
	// Save durably replaces the stored document.
	Save(models.AppState) error

	// Utils
	GetConfigPath() string
}
