package calendar

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 02:00 UTC on the 6th is still the 5th at UTC-5
	clock := FixedClock(time.Date(2026, 1, 6, 2, 0, 0, 0, time.UTC).In(loc))
	cal := New(clock)

	if got := cal.Today(); got != "2026-01-05" {
		t.Errorf("Today() = %q, want %q", got, "2026-01-05")
	}
	if got := cal.Yesterday(); got != "2026-01-04" {
		t.Errorf("Yesterday() = %q, want %q", got, "2026-01-04")
	}
}

func TestNewDefaultsToSystemClock(t *testing.T) {
	cal := New(nil)
	if !ValidateDate(cal.Today()) {
		t.Errorf("Today() = %q is not a valid date", cal.Today())
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		want    int
		wantErr bool
	}{
		{name: "same day", a: "2026-01-05", b: "2026-01-05", want: 0},
		{name: "consecutive", a: "2026-01-05", b: "2026-01-06", want: 1},
		{name: "reversed is absolute", a: "2026-01-06", b: "2026-01-05", want: 1},
		{name: "across month end", a: "2026-01-31", b: "2026-02-01", want: 1},
		{name: "across leap day", a: "2024-02-28", b: "2024-03-01", want: 2},
		{name: "across DST change", a: "2026-03-07", b: "2026-03-09", want: 2},
		{name: "across year", a: "2025-12-31", b: "2026-01-01", want: 1},
		{name: "invalid first", a: "2026-13-01", b: "2026-01-01", wantErr: true},
		{name: "invalid second", a: "2026-01-01", b: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLastNDays(t *testing.T) {
	cal := New(FixedDate("2026-03-02"))

	got := cal.LastNDays(4)
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if len(got) != len(want) {
		t.Fatalf("LastNDays(4) returned %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LastNDays(4)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := cal.LastNDays(0); len(got) != 0 {
		t.Errorf("LastNDays(0) = %v, want empty", got)
	}
	if got := cal.LastNDays(30); len(got) != 30 || got[29] != "2026-03-02" {
		t.Errorf("LastNDays(30) should have 30 days ending today, got %d ending %q", len(got), got[len(got)-1])
	}
}

func TestHeatmapWindow(t *testing.T) {
	tests := []struct {
		name         string
		today        string
		weeks        int
		weekStartsOn int
		wantFirst    string
		wantLast     string
	}{
		{
			name:         "monday weeks from a wednesday end next sunday",
			today:        "2026-01-07",
			weeks:        12,
			weekStartsOn: 1,
			wantFirst:    "2025-10-20",
			wantLast:     "2026-01-11",
		},
		{
			name:         "monday weeks on a sunday end today",
			today:        "2026-01-11",
			weeks:        1,
			weekStartsOn: 1,
			wantFirst:    "2026-01-05",
			wantLast:     "2026-01-11",
		},
		{
			name:         "sunday weeks end on saturday",
			today:        "2026-01-07",
			weeks:        2,
			weekStartsOn: 0,
			wantFirst:    "2025-12-28",
			wantLast:     "2026-01-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := New(FixedDate(tt.today))
			got := cal.HeatmapWindow(tt.weeks, tt.weekStartsOn)
			if len(got) != tt.weeks*7 {
				t.Fatalf("HeatmapWindow() returned %d days, want %d", len(got), tt.weeks*7)
			}
			if got[0] != tt.wantFirst {
				t.Errorf("first day = %q, want %q", got[0], tt.wantFirst)
			}
			if got[len(got)-1] != tt.wantLast {
				t.Errorf("last day = %q, want %q", got[len(got)-1], tt.wantLast)
			}
			first, _ := Weekday(got[0])
			if int(first) != tt.weekStartsOn {
				t.Errorf("window starts on %s, want weekday %d", first, tt.weekStartsOn)
			}
		})
	}

	if got := New(FixedDate("2026-01-07")).HeatmapWindow(0, 1); len(got) != 0 {
		t.Errorf("HeatmapWindow(0) = %v, want empty", got)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays() error = %v", err)
	}
	if got != "2026-02-28" {
		t.Errorf("AddDays(2026-03-01, -1) = %q, want 2026-02-28", got)
	}

	if _, err := AddDays("03/01/2026", 1); err == nil {
		t.Error("AddDays() should reject a malformed date")
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2026-01-05", true},
		{"2026-02-30", false},
		{"2026-1-5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateDate(tt.date); got != tt.want {
			t.Errorf("ValidateDate(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
