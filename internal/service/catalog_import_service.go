package service

import (
	"context"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/importer"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// ErrImportUnreadable indicates the uploaded file could not be parsed at all.
var ErrImportUnreadable = errors.New("import file could not be parsed")

// CatalogImportService handles bulk catalog import and export.
type CatalogImportService interface {
	Template() []byte
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, reader io.Reader, meta RequestMeta) (dto.BulkImportResponse, error)
}

type catalogImportService struct {
	repo      repository.CatalogRepository
	audit     repository.AuditLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogImportService builds the bulk import/export service.
func NewCatalogImportService(repo repository.CatalogRepository, audit repository.AuditLogRepository, validate *validator.Validate, logger zerolog.Logger) CatalogImportService {
	return &catalogImportService{
		repo:      repo,
		audit:     audit,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_import_service").Logger(),
	}
}

func (s *catalogImportService) Template() []byte {
	return importer.CatalogTemplate()
}

func (s *catalogImportService) Export(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.List(ctx, repository.CatalogFilter{})
	if err != nil {
		return nil, err
	}

	return importer.WriteCatalog(entries)
}

// Import runs every row through the same validation path as the single-record
// create endpoint. Row failures are collected, not fatal; one summarizing
// audit entry records the batch totals.
func (s *catalogImportService) Import(ctx context.Context, reader io.Reader, meta RequestMeta) (dto.BulkImportResponse, error) {
	rows, err := importer.ParseCatalog(reader)
	if err != nil {
		return dto.BulkImportResponse{}, ErrImportUnreadable
	}

	response := dto.BulkImportResponse{
		RowsProcessed: len(rows),
		Errors:        []dto.ImportRowError{},
	}

	for _, row := range rows {
		if row.Err != nil {
			response.Failed++
			response.Errors = append(response.Errors, dto.ImportRowError{Row: row.Line, Message: row.Err.Error()})
			continue
		}

		entry, err := buildCatalogEntry(s.validator, row.Request)
		if err != nil {
			response.Failed++
			response.Errors = append(response.Errors, dto.ImportRowError{Row: row.Line, Message: err.Error()})
			continue
		}

		if err := s.repo.Create(ctx, &entry); err != nil {
			response.Failed++
			response.Errors = append(response.Errors, dto.ImportRowError{Row: row.Line, Message: err.Error()})
			continue
		}

		response.Succeeded++
	}

	entry := newAuditLog("catalog_entry", nil, models.AuditActionBulkImport, map[string]interface{}{
		"rows_processed": response.RowsProcessed,
		"succeeded":      response.Succeeded,
		"failed":         response.Failed,
	}, meta)
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record bulk import audit entry")
	}

	s.logger.Info().
		Int("rows_processed", response.RowsProcessed).
		Int("succeeded", response.Succeeded).
		Int("failed", response.Failed).
		Msg("bulk catalog import finished")

	return response, nil
}
