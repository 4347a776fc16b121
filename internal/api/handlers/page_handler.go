package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

// PageHandler serves the three navigable pages as JSON view models.
type PageHandler struct {
	ds  service.DashboardService
	ss  service.SettingsService
	loc *time.Location
}

func NewPageHandler(ds service.DashboardService, ss service.SettingsService, loc *time.Location) *PageHandler {
	return &PageHandler{ds: ds, ss: ss, loc: loc}
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	return h.dashboard(c, c.Query("tab"))
}

func (h *PageHandler) Calendar(c *fiber.Ctx) error {
	return h.dashboard(c, service.TabCalendar)
}

func (h *PageHandler) dashboard(c *fiber.Ctx, tab string) error {
	ref, err := parseDate(c.Query("date"), h.loc)
	if err != nil {
		return sendError(c, err)
	}
	view, err := service.ParseViewMode(c.Query("view"))
	if err != nil {
		return sendError(c, err)
	}

	dashboard, err := h.ds.Dashboard(c.Context(), tab, ref, view)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(dashboard)
}

func (h *PageHandler) Settings(c *fiber.Ctx) error {
	webhookURL, err := h.ss.Get(c.Context())
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(transfer.SettingsView{WebhookURL: webhookURL})
}

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Oops! Page not found",
	})
}
