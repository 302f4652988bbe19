package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/config"
	"github.com/ShridharSLS/Reaction-sub000/internal/db"
	"github.com/ShridharSLS/Reaction-sub000/internal/handler"
	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
	"github.com/ShridharSLS/Reaction-sub000/internal/router"
	"github.com/ShridharSLS/Reaction-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	middleware.InitLogger(cfg.LogLevel, "reaction-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	videoRepo := repository.NewVideoRepo(pool)
	reviewRepo := repository.NewReviewRepo(pool)
	hostRepo := repository.NewHostRepo(pool)

	submitSvc := service.NewSubmitService(videoRepo)
	reviewSvc := service.NewReviewService(reviewRepo, videoRepo, hostRepo, cache)
	registrySvc := service.NewRegistryService(hostRepo, reviewRepo, cache)

	cacheWorker := service.NewCacheWorker(pool, cache)
	go cacheWorker.Start(ctx)

	if interval, err := time.ParseDuration(cfg.AuditInterval); err == nil && interval > 0 {
		auditWorker := service.NewAuditWorker(reviewRepo, interval, func(count int64) {
			handler.Metrics.TakenByRepairsTotal.Add(float64(count))
		})
		go auditWorker.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Reaction API",
		ServerHeader: "Reaction",
	})

	router.Setup(app, &router.Handlers{
		Video:  handler.NewVideoHandler(submitSvc, reviewSvc, videoRepo, reviewRepo, cache),
		Review: handler.NewReviewHandler(reviewSvc),
		Host:   handler.NewHostHandler(registrySvc),
		Stats:  handler.NewStatsHandler(videoRepo),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Reaction backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
