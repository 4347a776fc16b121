package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/story-scheduler/internal/service"
)

type VideoHandler struct {
	vs service.VideoService
}

func NewVideoHandler(vs service.VideoService) *VideoHandler {
	return &VideoHandler{vs: vs}
}

// GetVideo streams an accepted upload back for preview.
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	video, err := h.vs.Get(id)
	if err != nil {
		return sendError(c, err)
	}
	f, err := h.vs.Open(id)
	if err != nil {
		slog.Info(err.Error(), "video_id", id)
		return sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, video.FileType)
	return c.SendStream(f, int(video.FileSize))
}
