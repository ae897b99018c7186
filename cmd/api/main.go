package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"bugtrail/internal/config"
	"bugtrail/internal/handler"
	"bugtrail/internal/middleware"
	"bugtrail/internal/repository"
	"bugtrail/internal/service"
	"bugtrail/internal/service/auth"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, unread counts will not be cached")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, cfg, log)
	handlers := handler.NewHandlers(services)

	if err := services.Retention.Start(24); err != nil {
		log.Warn().Err(err).Msg("failed to start cleanup scheduler")
	}
	defer services.Retention.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))

	bugs := protected.Group("/bugs")
	bugs.Post("/", h.Bug.Create)
	bugs.Get("/:id", h.Bug.Get)
	bugs.Post("/:id/assign", h.Bug.Assign)
	bugs.Patch("/:id/status", h.Bug.UpdateStatus)
	bugs.Post("/:id/resolve", h.Bug.Resolve)
	bugs.Post("/:id/close", h.Bug.Close)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/preferences", h.Notification.GetPreferences)
	notifications.Put("/preferences", h.Notification.UpdatePreferences)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	admin := protected.Group("/admin", middleware.RequireRole("admin"))
	admin.Put("/notifications/server", h.Admin.SetServerEnabled)
	admin.Put("/notifications/channels/:channel", h.Admin.SetChannelEnabled)
	admin.Put("/users/:id/preferences", h.Admin.SetUserPreferences)
	admin.Get("/notifications/cleanup-stats", h.Admin.GetCleanupStats)
	admin.Post("/notifications/scheduler/start", h.Admin.StartScheduler)
	admin.Post("/notifications/scheduler/stop", h.Admin.StopScheduler)
}
