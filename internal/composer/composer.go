// Package composer turns a draft into a scheduled post. A Composer moves
// through closed, open, validating and submitting; edits are only accepted
// while it is open and only one submission can be in flight.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/delivery"
	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/internal/repository"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
	"github.com/spf13/afero"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	DefaultTime     = "12:00"
	DefaultPlatform = models.PlatformInstagram
)

var (
	ErrMissingVideo      = errors.New("please upload a video")
	ErrNoPlatforms       = errors.New("please select at least one platform")
	ErrMissingWebhook    = errors.New("please configure a webhook url in settings")
	ErrSubmitFailed      = errors.New("failed to schedule post")
	ErrNotOpen           = errors.New("composer is not open")
	ErrAlreadyOpen       = errors.New("composer is already open")
	ErrAlreadySubmitting = errors.New("post is already being submitted")
	ErrUnknownPlatform   = errors.New("unknown platform")
	ErrInvalidTime       = errors.New("scheduled time must be HH:mm")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

type WebhookSource interface {
	Get(ctx context.Context) (string, error)
}

type VideoSource interface {
	Open(id string) (afero.File, error)
}

type PlatformSource interface {
	Valid(id string) bool
}

type Deps struct {
	Settings  WebhookSource
	Videos    VideoSource
	Platforms PlatformSource
	Posts     repository.PostRepository
	Sender    delivery.Sender
	Location  *time.Location
	Now       func() time.Time
}

type Composer struct {
	deps Deps

	mu       sync.Mutex
	state    State
	draft    *models.Draft
	openedAt time.Time
}

func New(deps Deps) *Composer {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Composer{deps: deps}
}

// Open starts a fresh draft. A zero defaultDate means today.
func (c *Composer) Open(defaultDate time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateClosed {
		return ErrAlreadyOpen
	}

	if defaultDate.IsZero() {
		defaultDate = c.deps.Now()
	}
	c.draft = &models.Draft{
		Platforms:         []string{DefaultPlatform},
		ScheduledDate:     utils.StartOfDay(defaultDate.In(c.deps.Location)),
		ScheduledTime:     DefaultTime,
		RecurrencePattern: utils.RecurrenceDaily,
		SelectedDays:      []time.Weekday{},
	}
	c.state = StateOpen
	c.openedAt = c.deps.Now()
	return nil
}

// Close discards the draft. It fails while a submission is in flight.
func (c *Composer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateValidating || c.state == StateSubmitting {
		return ErrAlreadySubmitting
	}
	c.state = StateClosed
	c.draft = nil
	return nil
}

func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Composer) OpenedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openedAt
}

func (c *Composer) Draft() (models.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return models.Draft{}, ErrNotOpen
	}
	return c.draft.Clone(), nil
}

func (c *Composer) edit(fn func(d *models.Draft) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateClosed:
		return ErrNotOpen
	case StateValidating, StateSubmitting:
		return ErrAlreadySubmitting
	}
	return fn(c.draft)
}

func (c *Composer) SetVideo(video *models.Video) error {
	return c.edit(func(d *models.Draft) error {
		d.Video = video
		return nil
	})
}

func (c *Composer) SetCaption(caption string) error {
	return c.edit(func(d *models.Draft) error {
		d.Caption = caption
		return nil
	})
}

func (c *Composer) TogglePlatform(id string) error {
	if !c.deps.Platforms.Valid(id) {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, id)
	}
	return c.edit(func(d *models.Draft) error {
		d.Platforms = utils.Toggle(d.Platforms, id)
		return nil
	})
}

// SetPlatforms replaces the selection; duplicates collapse.
func (c *Composer) SetPlatforms(ids []string) error {
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if !c.deps.Platforms.Valid(id) {
			return fmt.Errorf("%w: %q", ErrUnknownPlatform, id)
		}
		if !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}
	return c.edit(func(d *models.Draft) error {
		d.Platforms = selected
		return nil
	})
}

func (c *Composer) SetDate(date time.Time) error {
	return c.edit(func(d *models.Draft) error {
		d.ScheduledDate = utils.StartOfDay(date.In(c.deps.Location))
		return nil
	})
}

func (c *Composer) SetTime(clock string) error {
	if _, err := time.Parse(utils.ClockLayout, clock); err != nil {
		return ErrInvalidTime
	}
	return c.edit(func(d *models.Draft) error {
		d.ScheduledTime = clock
		return nil
	})
}

func (c *Composer) SetRecurring(recurring bool) error {
	return c.edit(func(d *models.Draft) error {
		d.IsRecurring = recurring
		return nil
	})
}

func (c *Composer) SetRecurrencePattern(pattern utils.RecurrencePattern) error {
	if _, err := utils.ParseRecurrencePattern(string(pattern)); err != nil {
		return err
	}
	return c.edit(func(d *models.Draft) error {
		d.RecurrencePattern = pattern
		return nil
	})
}

func (c *Composer) ToggleDay(day time.Weekday) error {
	if day < time.Sunday || day > time.Saturday {
		return ErrInvalidWeekday
	}
	return c.edit(func(d *models.Draft) error {
		d.SelectedDays = utils.Toggle(d.SelectedDays, day)
		return nil
	})
}

// Submit validates the draft, hands the payload to the sender and records
// the post. Validation failures and send errors leave the composer open.
func (c *Composer) Submit(ctx context.Context) (*models.Post, *delivery.Result, error) {
	c.mu.Lock()
	switch c.state {
	case StateClosed:
		c.mu.Unlock()
		return nil, nil, ErrNotOpen
	case StateValidating, StateSubmitting:
		c.mu.Unlock()
		return nil, nil, ErrAlreadySubmitting
	}
	c.state = StateValidating
	draft := c.draft.Clone()
	c.mu.Unlock()

	post, result, err := c.submit(ctx, &draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateOpen
		return nil, nil, err
	}
	c.state = StateClosed
	c.draft = nil
	return post, result, nil
}

func (c *Composer) submit(ctx context.Context, draft *models.Draft) (*models.Post, *delivery.Result, error) {
	if draft.Video == nil {
		return nil, nil, ErrMissingVideo
	}
	if len(draft.Platforms) == 0 {
		return nil, nil, ErrNoPlatforms
	}
	webhookURL, err := c.deps.Settings.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	if webhookURL == "" {
		return nil, nil, ErrMissingWebhook
	}

	scheduledAt, err := utils.CombineDateAndClock(draft.ScheduledDate, draft.ScheduledTime)
	if err != nil {
		return nil, nil, ErrInvalidTime
	}

	c.mu.Lock()
	c.state = StateSubmitting
	c.mu.Unlock()

	video, err := c.deps.Videos.Open(draft.Video.ID)
	if err != nil {
		slog.Info(err.Error(), "video_id", draft.Video.ID)
		return nil, nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer video.Close()

	payload := &transfer.Payload{
		WebhookURL:    webhookURL,
		Video:         draft.Video,
		VideoContent:  video,
		Caption:       draft.Caption,
		Platforms:     draft.Platforms,
		ScheduledDate: draft.ScheduledDate,
		ScheduledTime: draft.ScheduledTime,
		IsRecurring:   draft.IsRecurring,
	}
	if draft.IsRecurring {
		payload.RecurrencePattern = draft.RecurrencePattern
		if draft.RecurrencePattern == utils.RecurrenceCustom {
			payload.SelectedDays = draft.SelectedDays
		}
	}

	result, err := c.deps.Sender.Send(ctx, payload)
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	post := &models.Post{
		Date:      scheduledAt,
		Platforms: draft.Platforms,
		Status:    models.PostStatusScheduled,
		Caption:   draft.Caption,
		VideoID:   draft.Video.ID,
	}
	if draft.IsRecurring {
		post.Recurrence = &models.Recurrence{
			Pattern:      payload.RecurrencePattern,
			SelectedDays: payload.SelectedDays,
		}
	}

	id, err := c.deps.Posts.Create(ctx, post)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	post.ID = id

	slog.Info("post scheduled", "post_id", id, "scheduled_at", scheduledAt.Format(time.RFC3339))
	return post, result, nil
}
