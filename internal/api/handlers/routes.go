package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
)

type Services struct {
	Platforms service.PlatformService
	Posts     service.PostService
	Dashboard service.DashboardService
	Settings  service.SettingsService
	Videos    service.VideoService
	Drafts    *composer.Registry
	Location  *time.Location
}

// NewApp builds the fiber app with the shared middleware. bodyLimit caps
// request bodies, which bounds video uploads.
func NewApp(bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    bodyLimit,
		Immutable:    true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	return app
}

func RegisterRoutes(app *fiber.App, s Services) {
	pages := NewPageHandler(s.Dashboard, s.Settings, s.Location)
	app.Get("/", pages.Dashboard)
	app.Get("/calendar", pages.Calendar)
	app.Get("/settings", pages.Settings)

	api := app.Group("/api")

	platform := NewPlatformHandler(s.Platforms)
	api.Get("/platforms", platform.ListPlatforms)

	post := NewPostHandler(s.Posts, s.Videos, s.Drafts)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/stats", post.GetStats)

	draft := NewDraftHandler(s.Drafts, s.Videos, s.Location)
	api.Post("/drafts", draft.OpenDraft)
	api.Get("/drafts/:id", draft.GetDraft)
	api.Patch("/drafts/:id", draft.UpdateDraft)
	api.Delete("/drafts/:id", draft.CloseDraft)
	api.Post("/drafts/:id/video", draft.AttachVideo)
	api.Post("/drafts/:id/submit", draft.SubmitDraft)

	video := NewVideoHandler(s.Videos)
	api.Get("/videos/:id", video.GetVideo)

	calendar := NewCalendarHandler(s.Posts, s.Dashboard, s.Drafts, s.Location)
	api.Get("/calendar", calendar.GetCalendar)
	api.Post("/calendar/select", calendar.SelectDay)

	settings := NewSettingsHandler(s.Settings)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)

	app.Use(NotFound)
}
