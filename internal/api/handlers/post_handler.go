package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

type PostHandler struct {
	ps     service.PostService
	vs     service.VideoService
	drafts *composer.Registry
}

func NewPostHandler(ps service.PostService, vs service.VideoService, drafts *composer.Registry) *PostHandler {
	return &PostHandler{ps: ps, vs: vs, drafts: drafts}
}

// CreatePost schedules a post from a single multipart request. It runs the
// same composer as the draft endpoints, discarding the draft on failure.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	if _, err := c.MultipartForm(); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	id, draft, err := h.drafts.Open(time.Time{})
	if err != nil {
		return sendError(c, err)
	}
	defer func() {
		if err := h.drafts.Close(id); err != nil && !errors.Is(err, composer.ErrDraftNotFound) {
			slog.Info(err.Error(), "draft_id", id)
		}
	}()

	err = draft.ApplyForm(&transfer.PostCreation{
		Caption:           c.FormValue("caption"),
		Platforms:         c.FormValue("platforms"),
		ScheduledDate:     c.FormValue("scheduledDate"),
		ScheduledTime:     c.FormValue("scheduledTime"),
		IsRecurring:       c.FormValue("isRecurring"),
		RecurrencePattern: c.FormValue("recurrencePattern"),
		SelectedDays:      c.FormValue("selectedDays"),
	})
	if err != nil {
		return sendError(c, err)
	}

	if fh, err := c.FormFile("video"); err == nil {
		video, err := h.vs.AcceptFile(fh)
		if err != nil {
			return sendError(c, err)
		}
		if err := draft.SetVideo(video); err != nil {
			return sendError(c, err)
		}
	}

	post, result, err := h.drafts.Submit(c.Context(), id)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Post scheduled successfully",
		"post":     post,
		"delivery": result,
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		post, err := h.ps.PostInfo(c.Context(), id)
		if err != nil {
			return sendError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.ps.List(c.Context(), c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.ps.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to compute stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
