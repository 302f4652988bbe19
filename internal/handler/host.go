package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/service"
)

type HostHandler struct {
	svc *service.RegistryService
}

func NewHostHandler(svc *service.RegistryService) *HostHandler {
	return &HostHandler{svc: svc}
}

// List handles GET /api/hosts
func (h *HostHandler) List(c fiber.Ctx) error {
	hosts, err := h.svc.ListHosts(c.Context())
	if err != nil {
		return respondCoreError(c, err, "Failed to list hosts")
	}
	if hosts == nil {
		hosts = []model.Host{}
	}
	return c.JSON(hosts)
}

// Register handles POST /api/hosts — the schema evolution entry point.
func (h *HostHandler) Register(c fiber.Ctx) error {
	var req model.RegisterHostRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Name = name

	start := time.Now()
	resp, err := h.svc.RegisterHost(c.Context(), req)
	if err != nil {
		return respondCoreError(c, err, "Failed to register host")
	}
	Metrics.ProvisioningDuration.Observe(time.Since(start).Seconds())

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Deactivate handles DELETE /api/hosts/:hostId — soft only; historical
// per-video data is never removed.
func (h *HostHandler) Deactivate(c fiber.Ctx) error {
	hostID, errMsg := middleware.ValidateID(c.Params("hostId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.DeactivateHost(c.Context(), hostID); err != nil {
		return respondCoreError(c, err, "Failed to deactivate host")
	}

	return c.JSON(fiber.Map{"success": true})
}
