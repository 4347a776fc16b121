package models

import (
	"time"

	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

type Post struct {
	ID         string      `json:"id"`
	Date       time.Time   `json:"date"`
	Platforms  []string    `json:"platforms"`
	Status     string      `json:"status"` // scheduled, published, failed
	Caption    string      `json:"caption,omitempty"`
	VideoID    string      `json:"video_id,omitempty"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Recurrence struct {
	Pattern      utils.RecurrencePattern `json:"pattern"`
	SelectedDays []time.Weekday          `json:"selected_days,omitempty"`
}

const (
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)
