package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
)

// statusFor maps service and composer errors to an HTTP status. Anything
// unrecognised is treated as a validation problem with the request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, composer.ErrDraftNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, composer.ErrAlreadySubmitting),
		errors.Is(err, composer.ErrAlreadyOpen),
		errors.Is(err, composer.ErrNotOpen):
		return fiber.StatusConflict
	case errors.Is(err, composer.ErrSubmitFailed),
		errors.Is(err, service.ErrSettingsLoad),
		errors.Is(err, service.ErrSettingsSave):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusBadRequest
}

// errorMessage hides transport and storage details behind the generic
// sentinel text.
func errorMessage(err error) string {
	for _, generic := range []error{composer.ErrSubmitFailed, service.ErrSettingsLoad, service.ErrSettingsSave} {
		if errors.Is(err, generic) {
			return generic.Error()
		}
	}
	return err.Error()
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": errorMessage(err),
	})
}

// parseDate reads an optional date parameter; empty means the zero time.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return composer.ParseDate(s, loc)
}
