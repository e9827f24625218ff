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

// UserHandler exposes account listing and creation.
type UserHandler struct {
	svc    service.UserService
	logger zerolog.Logger
}

func NewUserHandler(svc service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger.With().Str("handler", "user").Logger()}
}

// Register mounts the user routes. Listing is limited to managers and HR
// admins; account creation is HR admin only.
func (h *UserHandler) Register(router fiber.Router, manage, admin fiber.Handler) {
	router.Get("/", manage, h.List)
	router.Post("/", admin, h.Create)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.svc.List(c.UserContext(), c.Query("role"), c.Query("department"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "username already exists")
	default:
		h.logger.Error().Err(err).Msg("user request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
