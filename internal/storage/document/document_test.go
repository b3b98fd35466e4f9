package document

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/models"
)

func TestEncodeDecode(t *testing.T) {
	state := models.DefaultState()
	state.Habits = []models.Habit{{
		ID:        "h1",
		Name:      "Stretch",
		Emoji:     "🧘",
		Color:     constants.ColorPurple,
		Frequency: models.Weekly(3),
		CreatedAt: "2026-01-01",
	}}
	state.Logs = []models.HabitLog{{HabitID: "h1", Date: "2026-01-02", Completed: true, Timestamp: 1767312000000}}

	data, err := Encode(state)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "\n  \"habits\": [") {
		t.Errorf("expected two-space indented output, got:\n%s", data)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(decoded.Habits, state.Habits) {
		t.Errorf("habits did not survive: got %+v, want %+v", decoded.Habits, state.Habits)
	}
	if decoded.Logs[0] != state.Logs[0] {
		t.Errorf("log did not survive: got %+v, want %+v", decoded.Logs[0], state.Logs[0])
	}
}

func TestEncodeNilCollections(t *testing.T) {
	data, err := Encode(models.AppState{Version: "1.0.0"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), `"habits": []`) || !strings.Contains(string(data), `"logs": []`) {
		t.Errorf("nil collections should encode as empty arrays:\n%s", data)
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	state, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if state.Version != constants.CurrentVersion {
		t.Errorf("Version = %q, want %q", state.Version, constants.CurrentVersion)
	}
	if state.Settings.Theme != constants.DefaultTheme {
		t.Errorf("Theme = %q, want %q", state.Settings.Theme, constants.DefaultTheme)
	}
	if state.Habits == nil || state.Logs == nil {
		t.Error("collections should be non-nil after Decode")
	}
}

func TestDecodeGarbage(t *testing.T) {
	for _, input := range []string{"", "not json", `{"habits": 3}`, `[1,2`} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) should fail", input)
		}
	}
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("write /tmp/x", io.ErrShortWrite)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("errors.Is(%v, ErrUnavailable) = false", err)
	}
	if !strings.Contains(err.Error(), "write /tmp/x") {
		t.Errorf("operation missing from %q", err.Error())
	}
}
