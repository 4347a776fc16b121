package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

type DraftHandler struct {
	drafts *composer.Registry
	vs     service.VideoService
	loc    *time.Location
}

func NewDraftHandler(drafts *composer.Registry, vs service.VideoService, loc *time.Location) *DraftHandler {
	return &DraftHandler{drafts: drafts, vs: vs, loc: loc}
}

func (h *DraftHandler) OpenDraft(c *fiber.Ctx) error {
	var req transfer.DraftOpen
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to parse json",
			})
		}
	}

	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		return sendError(c, err)
	}

	id, draft, err := h.drafts.Open(date)
	if err != nil {
		return sendError(c, err)
	}
	return h.sendDraft(c.Status(fiber.StatusCreated), id, draft)
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	draft, err := h.drafts.Get(id)
	if err != nil {
		return sendError(c, err)
	}
	return h.sendDraft(c, id, draft)
}

func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	draft, err := h.drafts.Get(id)
	if err != nil {
		return sendError(c, err)
	}

	var update transfer.DraftUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := draft.Apply(update); err != nil {
		return sendError(c, err)
	}
	return h.sendDraft(c, id, draft)
}

func (h *DraftHandler) AttachVideo(c *fiber.Ctx) error {
	id := c.Params("id")
	draft, err := h.drafts.Get(id)
	if err != nil {
		return sendError(c, err)
	}

	fh, err := c.FormFile("video")
	if err != nil {
		slog.Info(err.Error())
		return sendError(c, composer.ErrMissingVideo)
	}
	video, err := h.vs.AcceptFile(fh)
	if err != nil {
		return sendError(c, err)
	}
	if err := draft.SetVideo(video); err != nil {
		return sendError(c, err)
	}
	return h.sendDraft(c, id, draft)
}

func (h *DraftHandler) SubmitDraft(c *fiber.Ctx) error {
	post, result, err := h.drafts.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Post scheduled successfully",
		"post":     post,
		"delivery": result,
	})
}

func (h *DraftHandler) CloseDraft(c *fiber.Ctx) error {
	if err := h.drafts.Close(c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DraftHandler) sendDraft(c *fiber.Ctx, id string, draft *composer.Composer) error {
	d, err := draft.Draft()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(transfer.DraftInfo{
		ID:    id,
		State: draft.State().String(),
		Draft: d,
	})
}
