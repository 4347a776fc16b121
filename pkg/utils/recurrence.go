package utils

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type RecurrencePattern string

const (
	RecurrenceDaily  RecurrencePattern = "daily"
	RecurrenceWeekly RecurrencePattern = "weekly"
	RecurrenceCustom RecurrencePattern = "custom"
)

// maxOccurrences bounds a single expansion.
const maxOccurrences = 1000

var ErrUnknownPattern = errors.New("unknown recurrence pattern")

func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	switch p := RecurrencePattern(s); p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceCustom:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// CronSpec renders the recurrence of a post starting at start as a standard
// five field cron expression. An empty string means the post never repeats
// (custom pattern without any selected day).
func CronSpec(start time.Time, pattern RecurrencePattern, days []time.Weekday) (string, error) {
	prefix := fmt.Sprintf("%d %d * * ", start.Minute(), start.Hour())

	switch pattern {
	case RecurrenceDaily:
		return prefix + "*", nil
	case RecurrenceWeekly:
		return prefix + strconv.Itoa(int(start.Weekday())), nil
	case RecurrenceCustom:
		if len(days) == 0 {
			return "", nil
		}
		sorted := append([]time.Weekday(nil), days...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		fields := make([]string, 0, len(sorted))
		for i, d := range sorted {
			if d < time.Sunday || d > time.Saturday {
				return "", fmt.Errorf("weekday %d out of range", d)
			}
			if i > 0 && sorted[i-1] == d {
				continue
			}
			fields = append(fields, strconv.Itoa(int(d)))
		}
		return prefix + strings.Join(fields, ","), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
}

// Occurrences lists the times a recurring post fires inside [from, to],
// start included when it falls in the window. Times are produced in start's
// location so the schedule floats with the local calendar.
func Occurrences(start time.Time, pattern RecurrencePattern, days []time.Weekday, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	if !start.Before(from) && !start.After(to) {
		out = append(out, start)
	}

	spec, err := CronSpec(start, pattern, days)
	if err != nil || spec == "" {
		return out, err
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}

	cursor := start
	if from.After(cursor) {
		cursor = from.In(start.Location()).Add(-time.Second)
	}
	for len(out) < maxOccurrences {
		next := schedule.Next(cursor)
		if next.IsZero() || next.After(to) {
			break
		}
		if next.After(start) {
			out = append(out, next)
		}
		cursor = next
	}
	return out, nil
}
