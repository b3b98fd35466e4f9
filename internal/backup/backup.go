// Package backup keeps timestamped copies of the local document store
// (JSON file or SQLite database) next to it and restores them.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/storage/document"
	"github.com/jrr00064/habit-tracker/internal/storage/sqlite"
)

// ErrUnsupported is returned for stores that are not a local file
var ErrUnsupported = errors.New("backups are only supported for JSON and SQLite stores")

// Info describes a backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one store file
type Manager struct {
	path      string
	backupDir string
	ext       string
	sqlite    bool
	keep      int
	now       func() time.Time
}

// NewManager creates a manager for the store at path. Backups live in a
// backups/ directory beside it.
func NewManager(path string) (*Manager, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if path == "" || path == ":memory:" || strings.Contains(path, "://") || strings.Contains(path, "host=") {
		return nil, ErrUnsupported
	}

	m := &Manager{
		path:      path,
		backupDir: filepath.Join(filepath.Dir(path), constants.BackupDirName),
		ext:       ext,
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		m.sqlite = true
	case "":
		m.ext = ".json"
	}
	return m, nil
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the store into a new timestamped file and drops the
// oldest backups beyond the retention limit
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if _, err := os.Stat(m.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("nothing to back up, %s does not exist", m.path)
		}
		return "", err
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if m.sqlite {
		err = sqlite.BackupTo(m.path, dest)
	} else {
		err = copyFile(m.path, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.path, err)
	}
	logger.Debug("Created backup", "path", dest)

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return dest, nil
}

// nextPath returns a backup filename that does not exist yet
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(constants.TimestampFormat)
	candidate := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if counter > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		candidate = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, m.ext))
	}
}

var backupName = regexp.MustCompile(`^(\d{8}-\d{6})(?:-(\d+))?$`)

// ListBackups returns the available backups, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type entry struct {
		info    Info
		counter string
	}
	var found []entry
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.ext) {
			continue
		}

		match := backupName.FindStringSubmatch(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.ext))
		if match == nil {
			continue
		}
		ts, err := time.ParseInLocation(constants.TimestampFormat, match[1], time.Local)
		if err != nil {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, entry{
			info:    Info{Path: filepath.Join(m.backupDir, name), Timestamp: ts, Size: fi.Size()},
			counter: match[2],
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		if !found[i].info.Timestamp.Equal(found[j].info.Timestamp) {
			return found[i].info.Timestamp.After(found[j].info.Timestamp)
		}
		return counterValue(found[i].counter) > counterValue(found[j].counter)
	})

	backups := make([]Info, len(found))
	for i, f := range found {
		backups[i] = f.info
	}
	return backups, nil
}

func counterValue(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// rotate removes old backups beyond the retention limit
func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with the backup at backupPath. The current
// store is backed up first. Returns the path of that safety backup, if any.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.path); err == nil {
		safety, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	tmp := m.path + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return safety, fmt.Errorf("failed to restore store: %w", err)
	}

	logger.Info("Restored backup", "from", backupPath, "to", m.path)
	return safety, nil
}

func (m *Manager) verify(path string) error {
	if m.sqlite {
		return sqlite.VerifyFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = document.Decode(data)
	return err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
