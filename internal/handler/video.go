package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
	"github.com/ShridharSLS/Reaction-sub000/internal/service"
)

type VideoHandler struct {
	submit  *service.SubmitService
	reviews *service.ReviewService
	videos  *repository.VideoRepo
	revRepo *repository.ReviewRepo
	cache   *service.CacheService
}

func NewVideoHandler(submit *service.SubmitService, reviews *service.ReviewService, videos *repository.VideoRepo, revRepo *repository.ReviewRepo, cache *service.CacheService) *VideoHandler {
	return &VideoHandler{submit: submit, reviews: reviews, videos: videos, revRepo: revRepo, cache: cache}
}

// Submit handles POST /api/videos
func (h *VideoHandler) Submit(c fiber.Ctx) error {
	var req model.SubmitRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	url, errMsg := middleware.ValidateURL(req.URL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.URL = url

	pitch, errMsg := middleware.ValidatePitch(req.Pitch)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Pitch = pitch

	if !model.ValidVideoTypes[model.VideoType(req.Type)] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_TYPE",
			"Invalid type. Must be one of: trending, general")
	}
	if req.Likes < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "likes must be non-negative")
	}

	resp, err := h.submit.Submit(c.Context(), req)
	if err != nil {
		var dup *model.DuplicateContentError
		if errors.As(err, &dup) {
			Metrics.DuplicatesTotal.Inc()
		}
		return respondCoreError(c, err, "Failed to submit video")
	}

	Metrics.SubmissionsTotal.WithLabelValues(req.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CheckDuplicate handles GET /api/videos/duplicate-check?url=… — the
// advisory pre-submission lookup. Submission itself still settles races
// through the uniqueness constraint.
func (h *VideoHandler) CheckDuplicate(c fiber.Ctx) error {
	url, errMsg := middleware.ValidateURL(fiber.Query[string](c, "url"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	existing, found, err := h.submit.CheckDuplicate(c.Context(), url)
	if err != nil {
		return respondCoreError(c, err, "Failed to check for duplicates")
	}

	resp := fiber.Map{"duplicate": found}
	if found {
		resp["existingUrl"] = existing
	}
	return c.JSON(resp)
}

// GetByID handles GET /api/videos/:videoId
func (h *VideoHandler) GetByID(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	// Cache-aside: serve the raw cached JSON when present.
	if h.cache != nil {
		if data, err := h.cache.GetVideo(c.Context(), videoID); err == nil && data != nil {
			Metrics.CacheHits.Inc()
			c.Set("Content-Type", "application/json")
			return c.Send(data)
		}
		Metrics.CacheMisses.Inc()
	}

	v, err := h.videos.FindByID(c.Context(), videoID)
	if err != nil {
		return respondCoreError(c, err, "Failed to lookup video")
	}

	hosts, err := h.revRepo.HostDetails(c.Context(), videoID)
	if err != nil {
		return respondCoreError(c, err, "Failed to lookup video")
	}

	resp := model.VideoResponse{
		VideoID:     v.VideoID,
		URL:         v.URL,
		Type:        v.Type,
		LikesCount:  v.LikesCount,
		Pitch:       v.Pitch,
		Gate:        v.Gate(),
		Rating:      v.Rating,
		Score:       v.Score,
		TakenBy:     v.TakenBy,
		Hosts:       hosts,
		LastUpdated: v.LastUpdated,
	}

	if h.cache != nil {
		if err := h.cache.SetVideo(c.Context(), videoID, resp); err != nil {
			log.Printf("cache: set video error: %v", err)
		}
	}

	return c.JSON(resp)
}

// ListByGate handles GET /api/videos?gate=relevance|trash|reviewable
func (h *VideoHandler) ListByGate(c fiber.Ctx) error {
	gate := model.Gate(fiber.Query[string](c, "gate"))
	if gate == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM", "gate query parameter is required")
	}

	limit := fiber.Query[int](c, "limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	videos, err := h.videos.ListByGate(c.Context(), gate, limit)
	if err != nil {
		return respondCoreError(c, err, "Failed to list videos")
	}
	if videos == nil {
		videos = []model.Video{}
	}

	return c.JSON(videos)
}

// SetRelevance handles PUT /api/videos/:videoId/relevance
func (h *VideoHandler) SetRelevance(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.RelevanceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	v, err := h.reviews.SetRelevance(c.Context(), videoID, req.Rating)
	if err != nil {
		return respondCoreError(c, err, "Failed to set relevance rating")
	}

	return c.JSON(v)
}

// UpdateLikes handles PATCH /api/videos/:videoId/likes
func (h *VideoHandler) UpdateLikes(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.LikesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.Likes < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "likes must be non-negative")
	}

	v, err := h.reviews.UpdateLikes(c.Context(), videoID, req.Likes)
	if err != nil {
		return respondCoreError(c, err, "Failed to update likes")
	}

	return c.JSON(v)
}

// History handles GET /api/videos/:videoId/history
func (h *VideoHandler) History(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, err := h.reviews.History(c.Context(), videoID)
	if err != nil {
		return respondCoreError(c, err, "Failed to fetch status history")
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}

	return c.JSON(entries)
}
