package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	checks["database"] = checkDB(ctx, h.pool)
	if dbCheck, ok := checks["database"].(fiber.Map); ok {
		if dbCheck["status"] != "up" {
			overallStatus = "degraded"
		}
	}

	// Redis is optional: the cache degrades to no-ops without it.
	checks["redis"] = checkRedis(ctx, h.rdb)

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  overallStatus,
		"uptime":  time.Since(h.startAt).Round(time.Second).String(),
		"checks":  checks,
		"checked": time.Now().UTC().Format(time.RFC3339),
	})
}

func checkDB(ctx context.Context, pool *pgxpool.Pool) fiber.Map {
	if pool == nil {
		return fiber.Map{"status": "down", "error": "pool not configured"}
	}

	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		return fiber.Map{"status": "down", "error": err.Error()}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": time.Since(start).Milliseconds(),
	}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fiber.Map{"status": "down", "error": err.Error()}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": time.Since(start).Milliseconds(),
	}
}
