package storage

import (
	"github.com/jrr00064/habit-tracker/internal/models"
)

// MemoryStore keeps the document in process memory. It is the injectable
// replacement for a host-provided global and the store used by tests.
type MemoryStore struct {
	state   models.AppState
	saves   int
	failErr error
}

// NewMemoryStore creates a store holding a copy of initial
func NewMemoryStore(initial models.AppState) *MemoryStore {
	initial.Normalize()
	return &MemoryStore{state: initial.Clone()}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Load() (models.AppState, error) {
	return s.state.Clone(), nil
}

func (s *MemoryStore) Save(state models.AppState) error {
	if s.failErr != nil {
		return s.failErr
	}
	state.Normalize()
	s.state = state.Clone()
	s.saves++
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}

// Saves returns how many documents have been written
func (s *MemoryStore) Saves() int {
	return s.saves
}

// FailSaves makes every following Save return err (nil restores normal behavior)
func (s *MemoryStore) FailSaves(err error) {
	s.failErr = err
}
