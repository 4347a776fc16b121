package composer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/transfer"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

// Apply performs the edits present in u, stopping at the first error.
func (c *Composer) Apply(u transfer.DraftUpdate) error {
	if u.Caption != nil {
		if err := c.SetCaption(*u.Caption); err != nil {
			return err
		}
	}
	if u.TogglePlatform != nil {
		if err := c.TogglePlatform(*u.TogglePlatform); err != nil {
			return err
		}
	}
	if u.ScheduledDate != nil {
		date, err := ParseDate(*u.ScheduledDate, c.deps.Location)
		if err != nil {
			return err
		}
		if err := c.SetDate(date); err != nil {
			return err
		}
	}
	if u.ScheduledTime != nil {
		if err := c.SetTime(*u.ScheduledTime); err != nil {
			return err
		}
	}
	if u.IsRecurring != nil {
		if err := c.SetRecurring(*u.IsRecurring); err != nil {
			return err
		}
	}
	if u.RecurrencePattern != nil {
		if err := c.SetRecurrencePattern(utils.RecurrencePattern(*u.RecurrencePattern)); err != nil {
			return err
		}
	}
	if u.ToggleDay != nil {
		if err := c.ToggleDay(time.Weekday(*u.ToggleDay)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyForm loads the multipart fields of a one-shot submission. Unset
// fields keep the draft defaults.
func (c *Composer) ApplyForm(pc *transfer.PostCreation) error {
	if err := c.SetCaption(pc.Caption); err != nil {
		return err
	}

	if pc.Platforms != "" {
		var platforms []string
		if err := json.Unmarshal([]byte(pc.Platforms), &platforms); err != nil {
			return fmt.Errorf("invalid platforms format: %w", err)
		}
		if err := c.SetPlatforms(platforms); err != nil {
			return err
		}
	}

	if pc.ScheduledDate != "" {
		date, err := ParseDate(pc.ScheduledDate, c.deps.Location)
		if err != nil {
			return err
		}
		if err := c.SetDate(date); err != nil {
			return err
		}
	}
	if pc.ScheduledTime != "" {
		if err := c.SetTime(pc.ScheduledTime); err != nil {
			return err
		}
	}

	if pc.IsRecurring == "" {
		return nil
	}
	recurring, err := strconv.ParseBool(pc.IsRecurring)
	if err != nil {
		return fmt.Errorf("invalid isRecurring value: %w", err)
	}
	if err := c.SetRecurring(recurring); err != nil {
		return err
	}
	if !recurring {
		return nil
	}

	if pc.RecurrencePattern != "" {
		if err := c.SetRecurrencePattern(utils.RecurrencePattern(pc.RecurrencePattern)); err != nil {
			return err
		}
	}
	if pc.SelectedDays != "" {
		var days []int
		if err := json.Unmarshal([]byte(pc.SelectedDays), &days); err != nil {
			return fmt.Errorf("invalid selectedDays format: %w", err)
		}
		seen := map[int]bool{}
		for _, d := range days {
			if seen[d] {
				continue
			}
			seen[d] = true
			if err := c.ToggleDay(time.Weekday(d)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseDate accepts either a plain YYYY-MM-DD date, read in loc, or an
// ISO-8601 timestamp whose calendar day is taken in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)

	if d, err := time.ParseInLocation(utils.DateLayout, s, loc); err == nil {
		return d, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
