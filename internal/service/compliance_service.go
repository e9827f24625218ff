package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// ComplianceService manages compliance requirements.
type ComplianceService interface {
	List(ctx context.Context) ([]dto.ComplianceRequirementResponse, error)
	Create(ctx context.Context, payload dto.ComplianceRequirementCreateRequest, meta RequestMeta) (dto.ComplianceRequirementResponse, error)
}

type complianceService struct {
	repo      repository.ComplianceRepository
	catalog   repository.CatalogRepository
	audit     repository.AuditLogRepository
	tx        repository.TxManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewComplianceService builds the compliance requirement service.
func NewComplianceService(repo repository.ComplianceRepository, catalog repository.CatalogRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) ComplianceService {
	return &complianceService{
		repo:      repo,
		catalog:   catalog,
		audit:     audit,
		tx:        tx,
		validator: validate,
		logger:    logger.With().Str("component", "compliance_service").Logger(),
	}
}

func (s *complianceService) List(ctx context.Context) ([]dto.ComplianceRequirementResponse, error) {
	requirements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewComplianceRequirementResponseSlice(requirements), nil
}

func (s *complianceService) Create(ctx context.Context, payload dto.ComplianceRequirementCreateRequest, meta RequestMeta) (dto.ComplianceRequirementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ComplianceRequirementResponse{}, err
	}

	if _, err := s.catalog.GetByID(ctx, payload.CatalogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ComplianceRequirementResponse{}, ErrCatalogReferenceMissing
		}
		return dto.ComplianceRequirementResponse{}, err
	}

	requirement := models.ComplianceRequirement{
		Standard:    payload.Standard,
		Requirement: payload.Requirement,
		Frequency:   payload.Frequency,
		Department:  payload.Department,
		Role:        payload.Role,
		CatalogID:   payload.CatalogID,
	}

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &requirement); err != nil {
			return err
		}
		entry := newAuditLog("compliance_requirement", &requirement.ID, models.AuditActionCreate, map[string]interface{}{
			"standard":   requirement.Standard,
			"catalog_id": requirement.CatalogID,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.ComplianceRequirementResponse{}, err
	}

	s.logger.Info().Uint("requirement_id", requirement.ID).Str("standard", requirement.Standard).Msg("compliance requirement created")

	return dto.NewComplianceRequirementResponse(requirement), nil
}
