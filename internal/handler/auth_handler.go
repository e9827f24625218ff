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

// AuthHandler exposes login and the current-user lookup.
type AuthHandler struct {
	svc    service.AuthService
	logger zerolog.Logger
}

func NewAuthHandler(svc service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger.With().Str("handler", "auth").Logger()}
}

// RegisterPublic mounts the unauthenticated login route.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.Login)
}

// Register mounts routes that require an authenticated user.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Get("/auth/user", h.CurrentUser)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.Login(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	result, err := h.svc.CurrentUser(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", result)
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	default:
		h.logger.Error().Err(err).Msg("auth request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
