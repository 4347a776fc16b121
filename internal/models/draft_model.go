package models

import (
	"time"

	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

// Draft is the composer's working copy of a post. It lives only while the
// composer is open.
type Draft struct {
	Video             *Video                  `json:"video,omitempty"`
	Caption           string                  `json:"caption"`
	Platforms         []string                `json:"platforms"`
	ScheduledDate     time.Time               `json:"scheduled_date"`
	ScheduledTime     string                  `json:"scheduled_time"`
	IsRecurring       bool                    `json:"is_recurring"`
	RecurrencePattern utils.RecurrencePattern `json:"recurrence_pattern"`
	SelectedDays      []time.Weekday          `json:"selected_days"`
}

// Clone returns a deep copy safe to hand out of the composer.
func (d *Draft) Clone() Draft {
	c := *d
	c.Platforms = append([]string(nil), d.Platforms...)
	c.SelectedDays = append([]time.Weekday(nil), d.SelectedDays...)
	if d.Video != nil {
		v := *d.Video
		c.Video = &v
	}
	return c
}
