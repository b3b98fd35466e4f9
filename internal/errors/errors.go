package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/jrr00064/habit-tracker/internal/keyring"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/storage/postgres"
	"github.com/jrr00064/habit-tracker/internal/tracker"
	"github.com/jrr00064/habit-tracker/internal/validation"
)

// Format formats an error message with a consistent "Error: " prefix and,
// when one applies, a hint on the next line
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests what the user can do about err, or returns ""
func Hint(err error) string {
	var verr *validation.ValidationError
	switch {
	case stderrors.As(err, &verr):
		return "names are 1-50 characters; colors are emerald, blue, purple, orange, rose or amber"
	case stderrors.Is(err, tracker.ErrMalformedDocument):
		return "the file is not JSON; pick a file written by 'habits export'"
	case stderrors.Is(err, tracker.ErrInvalidShape):
		return "the document needs top-level habits, logs and settings"
	case stderrors.Is(err, tracker.ErrHabitNotFound):
		return "run 'habits list --archived' to see habit ids"
	case stderrors.Is(err, storage.ErrAlreadyInitialized):
		return "use 'habits init --force' to start over"
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		return "store the connection string with 'habits keyring set' and use --config keyring, or use .pgpass"
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "the OS keyring is not reachable; use .pgpass for the password instead"
	case stderrors.Is(err, storage.ErrStoreUnavailable):
		return "check that the config path is writable or the database is reachable (--config)"
	default:
		return ""
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
