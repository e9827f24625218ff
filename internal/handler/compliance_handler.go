package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// ComplianceHandler exposes compliance requirement rules.
type ComplianceHandler struct {
	svc    service.ComplianceService
	logger zerolog.Logger
}

func NewComplianceHandler(svc service.ComplianceService, logger zerolog.Logger) *ComplianceHandler {
	return &ComplianceHandler{svc: svc, logger: logger.With().Str("handler", "compliance").Logger()}
}

func (h *ComplianceHandler) Register(router fiber.Router, admin fiber.Handler) {
	router.Get("/", h.List)
	router.Post("/", admin, h.Create)
}

func (h *ComplianceHandler) List(c *fiber.Ctx) error {
	requirements, err := h.svc.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", requirements)
}

func (h *ComplianceHandler) Create(c *fiber.Ctx) error {
	var payload dto.ComplianceRequirementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	requirement, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "compliance requirement created", requirement)
}

func (h *ComplianceHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrCatalogReferenceMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "referenced catalog entry does not exist")
	default:
		h.logger.Error().Err(err).Msg("compliance request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
