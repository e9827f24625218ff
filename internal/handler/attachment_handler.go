package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// AttachmentHandler exposes evidence upload, listing and download.
type AttachmentHandler struct {
	svc    service.AttachmentService
	logger zerolog.Logger
}

func NewAttachmentHandler(svc service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{svc: svc, logger: logger.With().Str("handler", "attachment").Logger()}
}

func (h *AttachmentHandler) Register(router fiber.Router) {
	router.Get("/", h.List)
	router.Post("/", h.Upload)
	router.Get("/:id/download", h.Download)
}

func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	filter := repository.AttachmentFilter{
		EnrollmentID: parseQueryUint(c, "enrollmentId"),
		SessionID:    parseQueryUint(c, "sessionId"),
	}

	attachments, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", attachments)
}

func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.handleError(c, service.ErrUploadMissing)
	}

	enrollmentID := parseFormUint(c.FormValue("enrollment_id"))
	sessionID := parseFormUint(c.FormValue("session_id"))

	attachment, err := h.svc.Upload(c.UserContext(), fileHeader, enrollmentID, sessionID, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attachment uploaded", attachment)
}

// Download streams the stored file back under its original name.
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid attachment id")
	}

	attachment, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, attachment.ContentType)
	return c.Download(h.svc.FilePath(attachment), attachment.FileName)
}

func parseFormUint(value string) *uint {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}

func (h *AttachmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrAttachmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attachment not found")
	case errors.Is(err, service.ErrUploadMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "file upload is required")
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusBadRequest, "uploaded file exceeds the size limit")
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "uploaded file type is not allowed")
	case errors.Is(err, service.ErrAttachmentTargetMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "attachment must reference an enrollment or a session")
	default:
		h.logger.Error().Err(err).Msg("attachment request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
