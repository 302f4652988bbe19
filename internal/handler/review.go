package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// validateTransition normalizes one transition request in place. A non-empty
// code means the request is invalid and must be rejected before it reaches
// the service layer.
func validateTransition(req *model.TransitionRequest) (code, msg string) {
	if req.VideoID <= 0 || req.HostID <= 0 {
		return "MISSING_FIELDS", "videoId and hostId are required"
	}
	if !model.ValidHostStatuses[model.HostStatus(req.Status)] {
		return "INVALID_STATUS", "Invalid status. Must be one of: pending, accepted, rejected, assigned"
	}

	note, errMsg := middleware.ValidateNote(req.Note)
	if errMsg != "" {
		return "INVALID_FIELD", errMsg
	}
	req.Note = note

	extID, errMsg := middleware.ValidateExternalID(req.ExternalID)
	if errMsg != "" {
		return "INVALID_FIELD", errMsg
	}
	req.ExternalID = extID

	return "", ""
}

// Transition handles POST /api/reviews
func (h *ReviewHandler) Transition(c fiber.Ctx) error {
	var req model.TransitionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if code, msg := validateTransition(&req); code != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, code, msg)
	}

	resp, err := h.svc.Transition(c.Context(), req)
	if err != nil {
		return respondCoreError(c, err, "Failed to transition host status")
	}

	Metrics.TransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(resp)
}

// BulkTransition handles POST /api/reviews/bulk
func (h *ReviewHandler) BulkTransition(c fiber.Ctx) error {
	var req model.BulkTransitionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if len(req.Items) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "items must not be empty")
	}
	if len(req.Items) > middleware.MaxBulkItems {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "TOO_MANY_ITEMS", "At most 100 items per bulk request")
	}

	// Field-level validation up front; workflow-level failures are reported
	// per item without aborting siblings.
	for i := range req.Items {
		if code, msg := validateTransition(&req.Items[i]); code != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, code, msg)
		}
	}

	resp := h.svc.BulkTransition(c.Context(), req)
	for _, r := range resp.Results {
		if r.Success {
			Metrics.TransitionsTotal.WithLabelValues("bulk").Inc()
		}
	}

	return c.JSON(resp)
}

// ListByHostStatus handles GET /api/hosts/:hostId/videos?status=…
func (h *ReviewHandler) ListByHostStatus(c fiber.Ctx) error {
	hostID, errMsg := middleware.ValidateID(c.Params("hostId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	status := model.HostStatus(fiber.Query[string](c, "status"))
	if status == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM", "status query parameter is required")
	}

	limit := fiber.Query[int](c, "limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	videos, err := h.svc.ListByHostStatus(c.Context(), hostID, status, limit)
	if err != nil {
		return respondCoreError(c, err, "Failed to list videos")
	}
	if videos == nil {
		videos = []model.Video{}
	}

	return c.JSON(videos)
}
