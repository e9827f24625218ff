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

// DepartmentHandler exposes department listing and creation.
type DepartmentHandler struct {
	svc    service.DepartmentService
	logger zerolog.Logger
}

func NewDepartmentHandler(svc service.DepartmentService, logger zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{svc: svc, logger: logger.With().Str("handler", "department").Logger()}
}

func (h *DepartmentHandler) Register(router fiber.Router, admin fiber.Handler) {
	router.Get("/", h.List)
	router.Post("/", admin, h.Create)
}

func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.svc.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", departments)
}

func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var payload dto.DepartmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	department, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "department created", department)
}

func (h *DepartmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	default:
		h.logger.Error().Err(err).Msg("department request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
