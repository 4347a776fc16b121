package transfer

import (
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
)

type DayCell struct {
	Date          time.Time `json:"date"`
	Weekday       string    `json:"weekday"`
	Day           int       `json:"day"`
	InMonth       bool      `json:"in_month"`
	IsToday       bool      `json:"is_today"`
	IsSelected    bool      `json:"is_selected"`
	HasSchedule   bool      `json:"has_schedule"`
	HasRecurrence bool      `json:"has_recurrence"`
}

type CalendarView struct {
	View          string      `json:"view"`
	Title         string      `json:"title"`
	ReferenceDate time.Time   `json:"reference_date"`
	Days          []DayCell   `json:"days,omitempty"`
	Weeks         [][]DayCell `json:"weeks,omitempty"`
}

type CalendarSelect struct {
	Date string `json:"date"`
}

type Stats struct {
	PostsThisWeek  int `json:"posts_this_week"`
	PostsThisMonth int `json:"posts_this_month"`
	Scheduled      int `json:"scheduled"`
	Published      int `json:"published"`
}

type DashboardView struct {
	Tab       string         `json:"tab"`
	Stats     Stats          `json:"stats"`
	Calendar  CalendarView   `json:"calendar"`
	Scheduled []*models.Post `json:"scheduled"`
	Published []*models.Post `json:"published"`
}

type SettingsView struct {
	WebhookURL string `json:"webhook_url"`
}
