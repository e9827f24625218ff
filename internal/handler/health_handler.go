package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trainhub/trainhub-api/internal/utils"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	appName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/healthz", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "", fiber.Map{
		"service": h.appName,
		"status":  "ok",
	})
}
