package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

type CalendarHandler struct {
	ps     service.PostService
	ds     service.DashboardService
	drafts *composer.Registry
	loc    *time.Location
}

func NewCalendarHandler(ps service.PostService, ds service.DashboardService, drafts *composer.Registry, loc *time.Location) *CalendarHandler {
	return &CalendarHandler{ps: ps, ds: ds, drafts: drafts, loc: loc}
}

func (h *CalendarHandler) GetCalendar(c *fiber.Ctx) error {
	ref, err := parseDate(c.Query("date"), h.loc)
	if err != nil {
		return sendError(c, err)
	}
	view, err := service.ParseViewMode(c.Query("view"))
	if err != nil {
		return sendError(c, err)
	}

	calendar, err := h.ds.Calendar(c.Context(), ref, view)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load calendar",
		})
	}
	return c.JSON(calendar)
}

// SelectDay moves the calendar to the chosen day and opens a draft
// pre-filled with it.
func (h *CalendarHandler) SelectDay(c *fiber.Ctx) error {
	var req transfer.CalendarSelect
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		return sendError(c, err)
	}
	if date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date is required",
		})
	}
	view, err := service.ParseViewMode(c.Query("view"))
	if err != nil {
		return sendError(c, err)
	}

	posts, err := h.ps.List(c.Context(), "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load calendar",
		})
	}

	var (
		draftID string
		draft   *composer.Composer
		openErr error
	)
	picker := service.NewCalendarPicker(h.loc, time.Time{}, func(d time.Time) {
		draftID, draft, openErr = h.drafts.Open(d)
	})
	picker.SetView(view)
	picker.Select(date)
	if openErr != nil {
		return sendError(c, openErr)
	}

	d, err := draft.Draft()
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"calendar": picker.Render(posts),
		"draft": transfer.DraftInfo{
			ID:    draftID,
			State: draft.State().String(),
			Draft: d,
		},
	})
}
