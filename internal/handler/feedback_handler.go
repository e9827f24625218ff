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

// FeedbackHandler exposes post-session feedback submission and listing.
type FeedbackHandler struct {
	svc    service.FeedbackService
	logger zerolog.Logger
}

func NewFeedbackHandler(svc service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, logger: logger.With().Str("handler", "feedback").Logger()}
}

func (h *FeedbackHandler) Register(router fiber.Router, manage fiber.Handler) {
	router.Get("/", manage, h.List)
	router.Post("/", h.Create)
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	filter := repository.FeedbackFilter{
		SessionID:  parseQueryUint(c, "sessionId"),
		EmployeeID: parseQueryUint(c, "employeeId"),
	}

	feedback, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", feedback)
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback submitted", feedback)
}

func (h *FeedbackHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrEnrollmentReferenceMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "referenced enrollment does not exist")
	case errors.Is(err, service.ErrNotEnrollmentOwner):
		return utils.SendError(c, fiber.StatusForbidden, "feedback can only be submitted for your own enrollment")
	case errors.Is(err, service.ErrFeedbackExists):
		return utils.SendError(c, fiber.StatusConflict, "feedback already submitted for this enrollment")
	default:
		h.logger.Error().Err(err).Msg("feedback request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
