package utils

import (
	"errors"
	"testing"
	"time"
)

func TestCronSpec(t *testing.T) {
	start := time.Date(2025, 5, 18, 14, 30, 0, 0, time.UTC) // Sunday

	tests := []struct {
		pattern RecurrencePattern
		days    []time.Weekday
		want    string
	}{
		{RecurrenceDaily, nil, "30 14 * * *"},
		{RecurrenceWeekly, nil, "30 14 * * 0"},
		{RecurrenceCustom, []time.Weekday{time.Friday, time.Monday, time.Monday}, "30 14 * * 1,5"},
		{RecurrenceCustom, nil, ""},
	}
	for _, tt := range tests {
		got, err := CronSpec(start, tt.pattern, tt.days)
		if err != nil {
			t.Fatalf("%s: %v", tt.pattern, err)
		}
		if got != tt.want {
			t.Errorf("%s %v: got %q, want %q", tt.pattern, tt.days, got, tt.want)
		}
	}

	if _, err := CronSpec(start, "hourly", nil); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("expected ErrUnknownPattern, got %v", err)
	}
}

func TestOccurrences(t *testing.T) {
	start := time.Date(2025, 5, 18, 14, 30, 0, 0, time.UTC) // Sunday
	from := time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)
	to := EndOfWeek(from)

	daily, err := Occurrences(start, RecurrenceDaily, nil, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 7 {
		t.Fatalf("daily: got %d occurrences, want 7: %v", len(daily), daily)
	}
	for i, o := range daily {
		if o.Hour() != 14 || o.Minute() != 30 || o.Day() != 18+i {
			t.Errorf("daily[%d] = %v", i, o)
		}
	}

	custom, err := Occurrences(start, RecurrenceCustom, []time.Weekday{time.Tuesday, time.Thursday}, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(custom) != 3 || custom[1].Weekday() != time.Tuesday || custom[2].Weekday() != time.Thursday {
		t.Errorf("custom: %v", custom)
	}

	nextWeek := from.AddDate(0, 0, 7)
	weekly, err := Occurrences(start, RecurrenceWeekly, nil, nextWeek, EndOfWeek(nextWeek))
	if err != nil {
		t.Fatal(err)
	}
	if len(weekly) != 1 || !weekly[0].Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("weekly: %v", weekly)
	}

	before, err := Occurrences(start, RecurrenceDaily, nil, from.AddDate(0, 0, -7), from.Add(-time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != 0 {
		t.Errorf("expected no occurrences before start, got %v", before)
	}
}

func TestToggleDayIsIdempotentUnderDoubleToggle(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Wednesday}
	for d := time.Sunday; d <= time.Saturday; d++ {
		got := Toggle(Toggle(days, d), d)
		if !sameMembers(got, days) {
			t.Errorf("double toggle of %v: got %v, want %v", d, got, days)
		}
	}
}

func TestParseRecurrencePattern(t *testing.T) {
	if p, err := ParseRecurrencePattern("custom"); err != nil || p != RecurrenceCustom {
		t.Errorf("got %q, %v", p, err)
	}
	if _, err := ParseRecurrencePattern("yearly"); err == nil {
		t.Error("expected error")
	}
}
