package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
)

type StatsHandler struct {
	videos *repository.VideoRepo
}

func NewStatsHandler(videos *repository.VideoRepo) *StatsHandler {
	return &StatsHandler{videos: videos}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.videos.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch statistics",
			},
		})
	}

	return c.JSON(stats)
}
