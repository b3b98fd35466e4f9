package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Warn("stored document unreadable", "path", "/tmp/habits.json")

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "stored document unreadable") {
		t.Errorf("warning missing from log file: %q", data)
	}
	if Path(dir) != filepath.Join(dir, "logs", "habits.log") {
		t.Errorf("unexpected log path %s", Path(dir))
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantSeen []string
		wantGone []string
	}{
		{
			name:     "default keeps warnings",
			cfg:      Config{},
			wantSeen: []string{"warn line", "path=/tmp/habits.json", "habits"},
			wantGone: []string{"debug line", "info line"},
		},
		{
			name:     "debug flag lowers the threshold",
			cfg:      Config{Debug: true},
			wantSeen: []string{"debug line", "info line", "warn line"},
		},
		{
			name:     "explicit level wins over debug",
			cfg:      Config{Debug: true, Level: "error"},
			wantSeen: []string{"error line"},
			wantGone: []string{"debug line", "warn line"},
		},
		{
			name:     "level is case insensitive",
			cfg:      Config{Level: "INFO"},
			wantSeen: []string{"info line"},
			wantGone: []string{"debug line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init failed: %v", err)
			}

			Debug("debug line")
			Info("info line")
			Warn("warn line", "path", "/tmp/habits.json")
			Error("error line")

			out := buf.String()
			for _, s := range tt.wantSeen {
				if !strings.Contains(out, s) {
					t.Errorf("expected %q in output: %q", s, out)
				}
			}
			for _, s := range tt.wantGone {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in output: %q", s, out)
				}
			}
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(Config{Level: "loud", Output: &bytes.Buffer{}}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestDebugReportsCallerOutsideLogger(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("saved document", "habits", 3)
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Errorf("caller should be the test file, got %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	current = nil

	// These should not panic before Init
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if err := Close(); err != nil {
		t.Errorf("Close without a file: %v", err)
	}
}
