package transfer

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

// PostCreation carries the scalar multipart fields of a one-shot submission.
type PostCreation struct {
	Caption           string
	Platforms         string // JSON array of platform ids
	ScheduledDate     string // ISO-8601 date or timestamp
	ScheduledTime     string // HH:mm
	IsRecurring       string
	RecurrencePattern string
	SelectedDays      string // JSON array of weekday numbers, Sunday = 0
}

// Payload is what the composer hands to a delivery transport.
type Payload struct {
	WebhookURL        string
	Video             *models.Video
	VideoContent      io.Reader
	Caption           string
	Platforms         []string
	ScheduledDate     time.Time
	ScheduledTime     string
	IsRecurring       bool
	RecurrencePattern utils.RecurrencePattern
	SelectedDays      []time.Weekday
}

// Fields renders the scalar multipart fields. The video travels separately
// under the "video" field.
func (p *Payload) Fields() (map[string]string, error) {
	platforms, err := json.Marshal(nonNil(p.Platforms))
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"caption":       p.Caption,
		"platforms":     string(platforms),
		"scheduledDate": p.ScheduledDate.Format(time.RFC3339),
		"scheduledTime": p.ScheduledTime,
		"isRecurring":   strconv.FormatBool(p.IsRecurring),
	}

	if p.IsRecurring {
		days := make([]int, 0, len(p.SelectedDays))
		for _, d := range p.SelectedDays {
			days = append(days, int(d))
		}
		selected, err := json.Marshal(days)
		if err != nil {
			return nil, err
		}
		fields["recurrencePattern"] = string(p.RecurrencePattern)
		fields["selectedDays"] = string(selected)
	}
	return fields, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type PostList struct {
	Scheduled []*models.Post `json:"scheduled"`
	Published []*models.Post `json:"published"`
}
