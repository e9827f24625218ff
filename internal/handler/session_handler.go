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

// SessionHandler exposes training session CRUD and the calendar view.
type SessionHandler struct {
	svc    service.SessionService
	logger zerolog.Logger
}

func NewSessionHandler(svc service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, logger: logger.With().Str("handler", "session").Logger()}
}

func (h *SessionHandler) Register(router fiber.Router, manage fiber.Handler) {
	router.Get("/", h.List)
	router.Get("/calendar", h.Calendar)
	router.Get("/:id", h.Get)
	router.Post("/", manage, h.Create)
	router.Put("/:id", manage, h.Update)
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	filter := repository.SessionFilter{
		CatalogID: parseQueryUint(c, "catalogId"),
		Status:    c.Query("status"),
	}

	sessions, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", sessions)
}

func (h *SessionHandler) Calendar(c *fiber.Ctx) error {
	sessions, err := h.svc.Calendar(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", sessions)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid session id")
	}

	session, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", session)
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var payload dto.SessionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session created", session)
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid session id")
	}

	var payload dto.SessionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.svc.Update(c.UserContext(), id, payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "session updated", session)
}

func (h *SessionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrCatalogReferenceMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "referenced catalog entry does not exist")
	case errors.Is(err, service.ErrInvalidCalendarRange):
		return utils.SendError(c, fiber.StatusBadRequest, "start and end must be dates formatted as YYYY-MM-DD")
	default:
		h.logger.Error().Err(err).Msg("session request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
