package utils

import "time"

// StartOfDay returns local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// EndOfWeek returns the last instant of the Saturday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// WeekWindow returns the seven days, Sunday through Saturday, of the week
// containing ref.
func WeekWindow(ref time.Time) []time.Time {
	start := StartOfWeek(ref)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthGrid returns whole Sunday-first weeks covering the month of ref.
// Leading and trailing days belong to the adjacent months.
func MonthGrid(ref time.Time) [][]time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)

	var weeks [][]time.Time
	for start := StartOfWeek(first); !start.After(last); start = start.AddDate(0, 0, 7) {
		weeks = append(weeks, WeekWindow(start))
	}
	return weeks
}

// IsSameDay reports whether a and b fall on the same calendar day in a's
// location.
func IsSameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayHasSchedule reports whether any of dates shares a calendar day with day.
func DayHasSchedule(day time.Time, dates []time.Time) bool {
	for _, d := range dates {
		if IsSameDay(day, d) {
			return true
		}
	}
	return false
}

// CombineDateAndClock places an "HH:mm" clock on the calendar day of date.
func CombineDateAndClock(date time.Time, clock string) (time.Time, error) {
	tod, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
