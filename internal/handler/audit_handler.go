package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// AuditHandler exposes the read-only audit trail.
type AuditHandler struct {
	svc    service.AuditService
	logger zerolog.Logger
}

func NewAuditHandler(svc service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, logger: logger.With().Str("handler", "audit").Logger()}
}

func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/", h.List)
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.svc.List(c.UserContext(), c.Query("entityType"), c.Query("action"), parseQueryInt(c, "limit"))
	if err != nil {
		h.logger.Error().Err(err).Msg("audit list failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "", entries)
}
