package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// EvaluationHandler exposes manager effectiveness evaluations.
type EvaluationHandler struct {
	svc    service.EvaluationService
	logger zerolog.Logger
}

func NewEvaluationHandler(svc service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{svc: svc, logger: logger.With().Str("handler", "evaluation").Logger()}
}

func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
}

func (h *EvaluationHandler) List(c *fiber.Ctx) error {
	filter := repository.EvaluationFilter{
		EmployeeID: parseQueryUint(c, "employeeId"),
		ManagerID:  parseQueryUint(c, "managerId"),
	}

	evaluations, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", evaluations)
}

func (h *EvaluationHandler) Create(c *fiber.Ctx) error {
	var payload dto.EvaluationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluation, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation recorded", evaluation)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrEnrollmentReferenceMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "referenced enrollment does not exist")
	case errors.Is(err, service.ErrEnrollmentNotCompleted):
		return utils.SendError(c, fiber.StatusBadRequest, "evaluations require a completed enrollment")
	default:
		h.logger.Error().Err(err).Msg("evaluation request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
