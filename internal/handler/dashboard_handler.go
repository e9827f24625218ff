package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// DashboardHandler exposes aggregated compliance metrics.
type DashboardHandler struct {
	svc    service.DashboardService
	logger zerolog.Logger
}

func NewDashboardHandler(svc service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger.With().Str("handler", "dashboard").Logger()}
}

func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/metrics", h.Metrics)
	router.Get("/employee-compliance", h.EmployeeCompliance)
}

func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.svc.Metrics(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("dashboard metrics failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "", metrics)
}

func (h *DashboardHandler) EmployeeCompliance(c *fiber.Ctx) error {
	report, err := h.svc.EmployeeCompliance(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("employee compliance report failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "", report)
}
