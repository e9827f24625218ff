package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

var (
	// ErrCatalogNotFound indicates the requested catalog entry does not exist.
	ErrCatalogNotFound = errors.New("catalog entry not found")
	// ErrProviderNameRequired indicates an external course is missing its provider.
	ErrProviderNameRequired = errors.New("provider name is required for external training")
	// ErrInvalidCost indicates a cost amount could not be parsed.
	ErrInvalidCost = errors.New("invalid cost")
)

const defaultCurrency = "USD"

// CatalogService exposes training catalog use cases.
type CatalogService interface {
	List(ctx context.Context, filter repository.CatalogFilter) ([]dto.CatalogResponse, error)
	Get(ctx context.Context, id uint) (dto.CatalogResponse, error)
	Create(ctx context.Context, payload dto.CatalogCreateRequest, meta RequestMeta) (dto.CatalogResponse, error)
	Update(ctx context.Context, id uint, payload dto.CatalogUpdateRequest, meta RequestMeta) (dto.CatalogResponse, error)
	Delete(ctx context.Context, id uint, meta RequestMeta) (bool, error)
}

type catalogService struct {
	repo      repository.CatalogRepository
	audit     repository.AuditLogRepository
	tx        repository.TxManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogService builds the catalog service.
func NewCatalogService(repo repository.CatalogRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:      repo,
		audit:     audit,
		tx:        tx,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) List(ctx context.Context, filter repository.CatalogFilter) ([]dto.CatalogResponse, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewCatalogResponseSlice(entries), nil
}

func (s *catalogService) Get(ctx context.Context, id uint) (dto.CatalogResponse, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CatalogResponse{}, ErrCatalogNotFound
		}
		return dto.CatalogResponse{}, err
	}

	return dto.NewCatalogResponse(entry), nil
}

func (s *catalogService) Create(ctx context.Context, payload dto.CatalogCreateRequest, meta RequestMeta) (dto.CatalogResponse, error) {
	entry, err := buildCatalogEntry(s.validator, payload)
	if err != nil {
		return dto.CatalogResponse{}, err
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &entry); err != nil {
			return err
		}
		auditEntry := newAuditLog("catalog_entry", &entry.ID, models.AuditActionCreate, map[string]interface{}{
			"title": entry.Title,
			"type":  entry.Type,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, auditEntry)
	})
	if err != nil {
		return dto.CatalogResponse{}, err
	}

	s.logger.Info().Uint("catalog_id", entry.ID).Str("type", entry.Type).Msg("catalog entry created")

	return dto.NewCatalogResponse(entry), nil
}

func (s *catalogService) Update(ctx context.Context, id uint, payload dto.CatalogUpdateRequest, meta RequestMeta) (dto.CatalogResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CatalogResponse{}, err
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CatalogResponse{}, ErrCatalogNotFound
		}
		return dto.CatalogResponse{}, err
	}

	changed := map[string]interface{}{}

	if payload.Title != nil {
		entry.Title = *payload.Title
		changed["title"] = entry.Title
	}
	if payload.Type != nil {
		entry.Type = *payload.Type
		changed["type"] = entry.Type
	}
	if payload.Category != nil {
		entry.Category = *payload.Category
		changed["category"] = entry.Category
	}
	if payload.Description != nil {
		entry.Description = *payload.Description
		changed["description"] = entry.Description
	}
	if payload.DurationHours != nil {
		entry.DurationHours = *payload.DurationHours
		changed["duration_hours"] = entry.DurationHours
	}
	if payload.ValidityMonths != nil {
		entry.ValidityMonths = *payload.ValidityMonths
		changed["validity_months"] = entry.ValidityMonths
	}
	if payload.IsRequired != nil {
		entry.IsRequired = *payload.IsRequired
		changed["is_required"] = entry.IsRequired
	}
	if payload.ComplianceStandard != nil {
		entry.ComplianceStandard = *payload.ComplianceStandard
		changed["compliance_standard"] = entry.ComplianceStandard
	}
	if payload.ProviderName != nil {
		provider := strings.TrimSpace(*payload.ProviderName)
		entry.ProviderName = &provider
		changed["provider_name"] = provider
	}
	if payload.Cost != nil {
		cents, err := dto.ParseCostCents(*payload.Cost)
		if err != nil {
			return dto.CatalogResponse{}, fmt.Errorf("%w: %v", ErrInvalidCost, err)
		}
		entry.CostCents = &cents
		changed["cost_cents"] = cents
	}
	if payload.Currency != nil {
		entry.Currency = strings.ToUpper(strings.TrimSpace(*payload.Currency))
		changed["currency"] = entry.Currency
	}

	if entry.Type == models.CatalogTypeExternal && (entry.ProviderName == nil || strings.TrimSpace(*entry.ProviderName) == "") {
		return dto.CatalogResponse{}, ErrProviderNameRequired
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, &entry); err != nil {
			return err
		}
		auditEntry := newAuditLog("catalog_entry", &entry.ID, models.AuditActionUpdate, changed, meta)
		return s.audit.WithTx(tx).Create(ctx, auditEntry)
	})
	if err != nil {
		return dto.CatalogResponse{}, err
	}

	s.logger.Info().Uint("catalog_id", entry.ID).Msg("catalog entry updated")

	return dto.NewCatalogResponse(entry), nil
}

// Delete removes a catalog entry. Deleting an unknown id reports false without
// error, and leaves no audit trace since nothing changed.
func (s *catalogService) Delete(ctx context.Context, id uint, meta RequestMeta) (bool, error) {
	var deleted bool
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.repo.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return nil
		}
		auditEntry := newAuditLog("catalog_entry", &id, models.AuditActionDelete, nil, meta)
		return s.audit.WithTx(tx).Create(ctx, auditEntry)
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info().Uint("catalog_id", id).Msg("catalog entry deleted")
	}

	return deleted, nil
}

// buildCatalogEntry validates a create payload and converts it into a model.
// The bulk importer runs every spreadsheet row through this same path so a
// row can never bypass validation the single-record endpoint enforces.
func buildCatalogEntry(validate *validator.Validate, payload dto.CatalogCreateRequest) (models.CatalogEntry, error) {
	if err := validate.Struct(payload); err != nil {
		return models.CatalogEntry{}, err
	}

	entry := models.CatalogEntry{
		Title:              strings.TrimSpace(payload.Title),
		Type:               payload.Type,
		Category:           strings.TrimSpace(payload.Category),
		Description:        payload.Description,
		DurationHours:      payload.DurationHours,
		ValidityMonths:     payload.ValidityMonths,
		IsRequired:         payload.IsRequired,
		ComplianceStandard: payload.ComplianceStandard,
		Currency:           defaultCurrency,
	}

	provider := strings.TrimSpace(payload.ProviderName)
	if payload.Type == models.CatalogTypeExternal && provider == "" {
		return models.CatalogEntry{}, ErrProviderNameRequired
	}
	if provider != "" {
		entry.ProviderName = &provider
	}

	if strings.TrimSpace(payload.Cost) != "" {
		cents, err := dto.ParseCostCents(payload.Cost)
		if err != nil {
			return models.CatalogEntry{}, fmt.Errorf("%w: %v", ErrInvalidCost, err)
		}
		entry.CostCents = &cents
	}

	if currency := strings.ToUpper(strings.TrimSpace(payload.Currency)); currency != "" {
		entry.Currency = currency
	}

	return entry, nil
}
