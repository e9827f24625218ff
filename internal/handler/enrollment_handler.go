package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// EnrollmentHandler exposes enrollment CRUD and the per-employee history view.
type EnrollmentHandler struct {
	svc    service.EnrollmentService
	logger zerolog.Logger
}

func NewEnrollmentHandler(svc service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc, logger: logger.With().Str("handler", "enrollment").Logger()}
}

// Register mounts the enrollment routes. Status updates (attendance and
// completion) are reserved for managers and HR admins.
func (h *EnrollmentHandler) Register(router fiber.Router, manage fiber.Handler) {
	router.Get("/", manage, h.List)
	router.Get("/employee/:id", h.ListByEmployee)
	router.Post("/", h.Create)
	router.Put("/:id", manage, h.Update)
}

func (h *EnrollmentHandler) List(c *fiber.Ctx) error {
	filter := repository.EnrollmentFilter{
		SessionID:  parseQueryUint(c, "sessionId"),
		EmployeeID: parseQueryUint(c, "employeeId"),
		Status:     c.Query("status"),
	}

	enrollments, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", enrollments)
}

// ListByEmployee returns one employee's training history. Employees may only
// view their own records; managers and HR admins may view anyone's.
func (h *EnrollmentHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid employee id")
	}

	if userRoleFromContext(c) == models.RoleEmployee && userIDFromContext(c) != employeeID {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	enrollments, err := h.svc.ListByEmployee(c.UserContext(), employeeID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", enrollments)
}

func (h *EnrollmentHandler) Create(c *fiber.Ctx) error {
	var payload dto.EnrollmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrollment created", enrollment)
}

func (h *EnrollmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	var payload dto.EnrollmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.svc.Update(c.UserContext(), id, payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "enrollment updated", enrollment)
}

func (h *EnrollmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrEnrollmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "enrollment not found")
	case errors.Is(err, service.ErrSessionReferenceMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "referenced session does not exist")
	case errors.Is(err, service.ErrSessionNotOpen):
		return utils.SendError(c, fiber.StatusBadRequest, "session is not open for enrollment")
	case errors.Is(err, service.ErrSessionFull):
		return utils.SendError(c, fiber.StatusBadRequest, "session has reached its capacity")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return utils.SendError(c, fiber.StatusConflict, "employee is already enrolled in this session")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		return utils.SendError(c, fiber.StatusBadRequest, "enrollment status transition is not allowed")
	default:
		h.logger.Error().Err(err).Msg("enrollment request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
