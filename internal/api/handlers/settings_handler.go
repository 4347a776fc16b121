package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	webhookURL, err := h.s.Get(c.Context())
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(transfer.SettingsView{WebhookURL: webhookURL})
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings transfer.SettingsUpdate
	err := c.BodyParser(&settings)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.Set(c.Context(), settings.WebhookURL); err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Settings saved successfully",
	})
}
