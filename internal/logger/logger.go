// Package logger writes diagnostics to a size-rotated file beside the store.
// Stderr sees them only in debug mode so command output stays clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jrr00064/habit-tracker/internal/constants"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	current *log.Logger
	file    *lumberjack.Logger
)

// Config selects where log lines go and which of them are kept
type Config struct {
	Debug bool
	// Level overrides the default threshold (warn, or debug with Debug set)
	Level string
	// Dir is the directory holding the store; logs go to Dir/logs
	Dir string
	// Output replaces the rotating log file when set
	Output io.Writer
}

// Path returns the active log file for a store directory
func Path(dir string) string {
	return filepath.Join(dir, "logs", constants.AppName+".log")
}

// Init replaces the process logger. A previously opened log file is closed.
func Init(cfg Config) error {
	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}

	if err := Close(); err != nil {
		return err
	}

	out := cfg.Output
	if out == nil {
		path := Path(cfg.Dir)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		out = file
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
	}

	current = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func resolveLevel(cfg Config) (log.Level, error) {
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level: %w", err)
		}
		return level, nil
	}
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	return log.WarnLevel, nil
}

// Close flushes and releases the rotating log file, if one is open
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if l := current; l != nil {
		l.Helper()
		l.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if l := current; l != nil {
		l.Helper()
		l.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if l := current; l != nil {
		l.Helper()
		l.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if l := current; l != nil {
		l.Helper()
		l.Error(msg, keyvals...)
	}
}
