package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

// respondCoreError maps the core error taxonomy onto the API error envelope.
// fallback is used for errors outside the taxonomy (storage failures etc.),
// which are never detailed to the caller.
func respondCoreError(c fiber.Ctx, err error, fallback string) error {
	var (
		dup       *model.DuplicateContentError
		illegal   *model.IllegalTransitionError
		collision *model.FieldCollisionError
		prov      *model.ProvisioningError
	)

	switch {
	case errors.As(err, &dup):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fiber.Map{
				"code":        "DUPLICATE_CONTENT",
				"message":     dup.Error(),
				"existingUrl": dup.ExistingURL,
			},
		})
	case errors.As(err, &illegal):
		attempted := string(illegal.To)
		actual := "unset"
		if illegal.From != nil {
			actual = string(*illegal.From)
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fiber.Map{
				"code":      "ILLEGAL_TRANSITION",
				"message":   illegal.Error(),
				"attempted": attempted,
				"actual":    actual,
			},
		})
	case errors.As(err, &collision):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "FIELD_COLLISION", collision.Error())
	case errors.As(err, &prov):
		// The only retryable class: steps are idempotent, the host stays
		// inactive, so the caller may simply re-submit. The allocated hostId
		// is echoed back so the retry resumes the same host.
		payload := fiber.Map{
			"code":      "PROVISIONING_FAILED",
			"message":   fmt.Sprintf("Provisioning failed at step %q; safe to retry", prov.Step),
			"retryable": true,
		}
		if prov.HostID > 0 {
			payload["hostId"] = prov.HostID
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": payload})
	case errors.Is(err, model.ErrInvalidRating):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_RATING", "Rating must be -1, 0, 1, 2 or 3")
	case errors.Is(err, model.ErrInvalidInput):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", "Request contains invalid values")
	case errors.Is(err, model.ErrUnknownHost):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "UNKNOWN_HOST", "Host does not exist or is inactive")
	case errors.Is(err, model.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
