package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrr00064/habit-tracker/internal/keyring"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/postgres"
	"github.com/jrr00064/habit-tracker/internal/storage/sqlite"
)

const (
	// MemoryConfig selects the in-process store
	MemoryConfig = ":memory:"
	// KeyringConfig reads a PostgreSQL connection string from the OS keyring
	KeyringConfig = "keyring"
)

// Open picks a backend from config:
//
//	:memory:                     in-process store
//	keyring                      PostgreSQL, connection string from the OS keyring
//	postgres:// or host=...      PostgreSQL, password must not be embedded
//	*.db, *.sqlite, *.sqlite3    SQLite
//	anything else                JSON file
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)

	switch {
	case config == MemoryConfig:
		return NewMemoryStore(models.DefaultState()), nil

	case config == KeyringConfig:
		connStr, err := keyring.Default().Get()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, store one with 'habits keyring set': %w", err)
			}
			return nil, err
		}
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		logger.Debug("Using PostgreSQL store from keyring")
		return postgres.New(connStr), nil

	case postgres.IsConnString(config):
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL store", "conn", postgres.MaskPassword(config))
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		logger.Debug("Using SQLite store", "path", path)
		return sqlite.NewStore(path), nil
	default:
		logger.Debug("Using JSON store", "path", path)
		return NewJSONStore(path), nil
	}
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("config path cannot be empty")
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
