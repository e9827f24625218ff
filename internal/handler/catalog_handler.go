package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/utils"
)

// CatalogHandler exposes catalog CRUD plus CSV template, export and bulk import.
type CatalogHandler struct {
	svc       service.CatalogService
	importSvc service.CatalogImportService
	logger    zerolog.Logger
}

func NewCatalogHandler(svc service.CatalogService, importSvc service.CatalogImportService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		svc:       svc,
		importSvc: importSvc,
		logger:    logger.With().Str("handler", "catalog").Logger(),
	}
}

// Register mounts the catalog routes. Reads, the import template and the
// export are open to every authenticated user; mutations and bulk import
// need manager rights, deletion HR admin.
func (h *CatalogHandler) Register(router fiber.Router, manage, admin fiber.Handler) {
	router.Get("/", h.List)
	router.Get("/template", h.Template)
	router.Get("/export", h.Export)
	router.Post("/bulk-import", manage, h.BulkImport)
	router.Get("/:id", h.Get)
	router.Post("/", manage, h.Create)
	router.Put("/:id", manage, h.Update)
	router.Delete("/:id", admin, h.Delete)
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	filter := repository.CatalogFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
	}
	if raw := strings.TrimSpace(c.Query("required")); raw != "" {
		required := raw == "true"
		filter.Required = &required
	}

	entries, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", entries)
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid catalog id")
	}

	entry, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "", entry)
}

func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var payload dto.CatalogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.Create(c.UserContext(), payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "catalog entry created", entry)
}

func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid catalog id")
	}

	var payload dto.CatalogUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.Update(c.UserContext(), id, payload, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "catalog entry updated", entry)
}

func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid catalog id")
	}

	removed, err := h.svc.Delete(c.UserContext(), id, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}

	// A missing id is not an error; the response reports whether a row
	// actually went away so repeated deletes stay idempotent.
	message := "catalog entry deleted"
	if !removed {
		message = "catalog entry was already gone"
	}
	return utils.SendSuccess(c, message, fiber.Map{"deleted": removed})
}

func (h *CatalogHandler) Template(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog-template.csv"`)
	return c.Send(h.importSvc.Template())
}

func (h *CatalogHandler) Export(c *fiber.Ctx) error {
	data, err := h.importSvc.Export(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog-export.csv"`)
	return c.Send(data)
}

func (h *CatalogHandler) BulkImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "csv file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	result, err := h.importSvc.Import(c.UserContext(), file, requestMeta(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "import finished", result)
}

func (h *CatalogHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrs))
	case errors.Is(err, service.ErrCatalogNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "catalog entry not found")
	case errors.Is(err, service.ErrProviderNameRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "provider name is required for external trainings")
	case errors.Is(err, service.ErrInvalidCost):
		return utils.SendError(c, fiber.StatusBadRequest, "cost must be a decimal amount like 250.00")
	case errors.Is(err, service.ErrImportUnreadable):
		return utils.SendError(c, fiber.StatusBadRequest, "uploaded file is not a readable csv")
	default:
		h.logger.Error().Err(err).Msg("catalog request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
