package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/story-scheduler/configs"
	"github.com/maheshrc27/story-scheduler/internal/api/handlers"
	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/delivery"
	job "github.com/maheshrc27/story-scheduler/internal/jobs"
	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/internal/repository"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	loc := cfg.Location()

	db, err := openDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	cancel()

	sender, err := delivery.New(cfg.Delivery.Mode, cfg.Delivery.Delay)
	if err != nil {
		log.Fatalf("Failed to configure delivery: %v", err)
	}

	var seed []*models.Post
	if cfg.SeedMockPosts {
		seed = repository.MockPosts(loc)
	}
	postRepo := repository.NewPostRepository(seed...)
	settingsRepo := repository.NewSettingsRepository(db)

	platformService := service.NewPlatformService()
	settingsService := service.NewSettingsService(settingsRepo, cfg.SecretKey)
	videoService := service.NewVideoService(nil, cfg.MaxVideoSize)
	postService := service.NewPostService(postRepo, loc)
	dashboardService := service.NewDashboardService(postRepo, postService, loc)

	drafts := composer.NewRegistry(composer.Deps{
		Settings:  settingsService,
		Videos:    videoService,
		Platforms: platformService,
		Posts:     postRepo,
		Sender:    sender,
		Location:  loc,
	})

	// multipart overhead on top of the video itself
	app := handlers.NewApp(int(cfg.MaxVideoSize) + 1024*1024)
	app.Use(logger.New())

	handlers.RegisterRoutes(app, handlers.Services{
		Platforms: platformService,
		Posts:     postService,
		Dashboard: dashboardService,
		Settings:  settingsService,
		Videos:    videoService,
		Drafts:    drafts,
		Location:  loc,
	})

	// cron jobs
	cleanupJob := job.NewCleanupJob(videoService, drafts, cfg.PreviewTTL)

	c := cron.New(cron.WithLocation(loc))
	if _, err := cleanupJob.Schedule(c); err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}
	c.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s (delivery: %s)", cfg.Port, cfg.Delivery.Mode)

	gracefulShutdown(app, c, db)
}

func openDB(cfg config.Database) (*sql.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.URL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		return sql.Open("postgres", cfg.URL)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, c *cron.Cron, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	<-c.Stop().Done()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
