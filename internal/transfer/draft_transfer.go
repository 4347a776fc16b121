package transfer

import "github.com/maheshrc27/story-scheduler/internal/models"

type DraftOpen struct {
	Date string `json:"date"`
}

// DraftUpdate is a partial edit; nil fields are left alone.
type DraftUpdate struct {
	Caption           *string `json:"caption"`
	TogglePlatform    *string `json:"toggle_platform"`
	ScheduledDate     *string `json:"scheduled_date"`
	ScheduledTime     *string `json:"scheduled_time"`
	IsRecurring       *bool   `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
	ToggleDay         *int    `json:"toggle_day"`
}

type DraftInfo struct {
	ID    string       `json:"id"`
	State string       `json:"state"`
	Draft models.Draft `json:"draft"`
}
