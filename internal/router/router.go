package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ShridharSLS/Reaction-sub000/internal/handler"
	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video  *handler.VideoHandler
	Review *handler.ReviewHandler
	Host   *handler.HostHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	submitLimit := middleware.NewSubmitRateLimiter()
	reviewLimit := middleware.NewReviewRateLimiter()
	registryLimit := middleware.NewRegistryRateLimiter()
	readLimit := middleware.NewReadRateLimiter()

	// API routes
	api := app.Group("/api")

	// Video routes
	api.Post("/videos", h.Video.Submit, submitLimit.Handler())
	api.Get("/videos", h.Video.ListByGate, readLimit.Handler())
	api.Get("/videos/duplicate-check", h.Video.CheckDuplicate, readLimit.Handler())
	api.Get("/videos/:videoId", h.Video.GetByID, readLimit.Handler())
	api.Get("/videos/:videoId/history", h.Video.History, readLimit.Handler())
	api.Put("/videos/:videoId/relevance", h.Video.SetRelevance, reviewLimit.Handler())
	api.Patch("/videos/:videoId/likes", h.Video.UpdateLikes, reviewLimit.Handler())

	// Review routes
	api.Post("/reviews", h.Review.Transition, reviewLimit.Handler())
	api.Post("/reviews/bulk", h.Review.BulkTransition, reviewLimit.Handler())

	// Host registry routes
	api.Get("/hosts", h.Host.List, readLimit.Handler())
	api.Post("/hosts", h.Host.Register, registryLimit.Handler())
	api.Delete("/hosts/:hostId", h.Host.Deactivate, registryLimit.Handler())
	api.Get("/hosts/:hostId/videos", h.Review.ListByHostStatus, readLimit.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, readLimit.Handler())
}
