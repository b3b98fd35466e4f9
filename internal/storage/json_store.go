package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// JSONStore keeps the document in a single JSON file guarded by <path>.lock
type JSONStore struct {
	path string
	lock *flock.Flock
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
		lock: flock.New(configPath + ".lock"),
	}
}

func (s *JSONStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", document.ErrAlreadyInitialized, s.path)
	}
	return s.Save(models.DefaultState())
}

func (s *JSONStore) Load() (models.AppState, error) {
	data, err := s.read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.DefaultState(), nil
		}
		return models.AppState{}, document.Unavailable("read "+s.path, err)
	}

	state, err := document.Decode(data)
	if err != nil {
		logger.Warn("Stored document is unreadable, starting from an empty one", "path", s.path, "error", err)
		return models.DefaultState(), nil
	}
	return state, nil
}

func (s *JSONStore) read() ([]byte, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	if err := acquire(ctx, s.lock.TryRLockContext); err != nil {
		return nil, err
	}
	defer func() { _ = s.lock.Unlock() }()

	return os.ReadFile(s.path)
}

func (s *JSONStore) Save(state models.AppState) error {
	data, err := document.Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return document.Unavailable("create config directory", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	if err := acquire(ctx, s.lock.TryLockContext); err != nil {
		return document.Unavailable("lock "+s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	// Write to a temp file and rename so readers never see a partial document
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return document.Unavailable("write "+tmpFile, err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return document.Unavailable("replace "+s.path, err)
	}

	logger.Debug("Saved document", "path", s.path, "habits", len(state.Habits), "logs", len(state.Logs))
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// acquire tries a flock lock function with retry logic
func acquire(ctx context.Context, try func(context.Context, time.Duration) (bool, error)) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := try(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}
