// Package postgres stores the document as the single row of an app_state
// table in a PostgreSQL schema named after the application.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/migration"
	"github.com/jrr00064/habit-tracker/internal/models"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
	"github.com/jrr00064/habit-tracker/migrations"
)

const upsertState = `
	INSERT INTO app_state (id, version, document, updated_at)
	VALUES (1, $1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET
		version = EXCLUDED.version,
		document = EXCLUDED.document,
		updated_at = EXCLUDED.updated_at`

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

// IsConnString reports whether config looks like a PostgreSQL URL or DSN
func IsConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

// withSearchPath points the connection at the application schema unless the
// caller already chose one
func withSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}

	if !hasParam(connStr, "search_path") {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}
	return connStr
}

// hasParam reports whether a URL query or DSN contains key (case-insensitive)
func hasParam(connStr, key string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a PostgreSQL URI or DSN that pq
// accepts. A syntactically valid string carrying a password returns
// ErrEmbeddedCredentials.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

// MaskPassword hides any password in connStr for display
func MaskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if u, err := url.Parse(connStr); err == nil {
			return u.Redacted()
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=xxxxx"
		}
	}
	return strings.Join(parts, " ")
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow("SELECT count(*) FROM app_state").Scan(&count); err != nil {
		return document.Unavailable("inspect app_state", err)
	}
	if count > 0 {
		return document.ErrAlreadyInitialized
	}

	return s.Save(models.DefaultState())
}

func (s *Store) Load() (models.AppState, error) {
	if err := s.open(); err != nil {
		return models.AppState{}, err
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
		logger.Warn("Stored document is unreadable, starting from an empty one", "error", err)
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

	logger.Debug("Saved document", "habits", len(state.Habits), "logs", len(state.Logs))
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
	return MaskPassword(s.connStr)
}

// GetDB returns the underlying database connection, or nil before first use
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// open connects, creates the schema and brings it up to date
func (s *Store) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return document.Unavailable("open database", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return document.Unavailable("connect", fmt.Errorf("%v (hint: try adding sslmode=disable to your connection string)", err))
		}
		return document.Unavailable("connect", err)
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return document.Unavailable("create schema", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return document.Unavailable("migrate database", err)
	}

	s.db = db
	return nil
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(db, subFS, migration.Postgres), nil
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
