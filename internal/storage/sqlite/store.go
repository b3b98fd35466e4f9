// Package sqlite stores the document as the single row of an app_state table
// in a local SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/migration"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
	"github.com/jrr00064/habit-tracker/migrations"
)

const upsertState = `
	INSERT INTO app_state (id, version, document, updated_at)
	VALUES (1, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		version = excluded.version,
		document = excluded.document,
		updated_at = excluded.updated_at`

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	exists, err := s.hasDocument()
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w at %s", document.ErrAlreadyInitialized, s.path)
	}

	return s.Save(models.DefaultState())
}

func (s *Store) Load() (models.AppState, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			return models.DefaultState(), nil
		}
		if err := s.open(); err != nil {
			return models.AppState{}, err
		}
	}

	var data string
	err := s.db.QueryRow("SELECT document FROM app_state WHERE id = 1").Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultState(), nil
		}
		return models.AppState{}, document.Unavailable("read app_state", err)
	}

	state, err := document.Decode([]byte(data))
	if err != nil {
		logger.Warn("Stored document is unreadable, starting from an empty one", "path", s.path, "error", err)
		return models.DefaultState(), nil
	}
	return state, nil
}

func (s *Store) Save(state models.AppState) error {
	if err := s.open(); err != nil {
		return err
	}

	data, err := document.Encode(state)
	if err != nil {
		return err
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(upsertState, state.Version, string(data), updatedAt); err != nil {
		return document.Unavailable("write app_state", err)
	}

	logger.Debug("Saved document", "path", s.path, "habits", len(state.Habits), "logs", len(state.Logs))
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load/Save
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// open connects to the database and brings the schema up to date
func (s *Store) open() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return document.Unavailable("create config directory", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return document.Unavailable("open database", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return document.Unavailable("migrate database", err)
	}

	s.db = db
	return nil
}

func (s *Store) hasDocument() (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT count(*) FROM app_state").Scan(&count); err != nil {
		return false, document.Unavailable("inspect app_state", err)
	}
	return count > 0, nil
}

// SchemaRunner returns a migration runner over the open database, or nil
// before the store has been opened
func (s *Store) SchemaRunner() (*migration.Runner, error) {
	if s.db == nil {
		return nil, nil
	}
	return newRunner(s.db)
}

func newRunner(db *sql.DB) (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(db, subFS, migration.SQLite), nil
}

func runMigrations(db *sql.DB) error {
	runner, err := newRunner(db)
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}
