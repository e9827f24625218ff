package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// DepartmentService manages departments.
type DepartmentService interface {
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, payload dto.DepartmentCreateRequest, meta RequestMeta) (models.Department, error)
}

type departmentService struct {
	departments repository.DepartmentRepository
	audit       repository.AuditLogRepository
	tx          repository.TxManager
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewDepartmentService builds the department service.
func NewDepartmentService(departments repository.DepartmentRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) DepartmentService {
	return &departmentService{
		departments: departments,
		audit:       audit,
		tx:          tx,
		validator:   validate,
		logger:      logger.With().Str("component", "department_service").Logger(),
	}
}

func (s *departmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Create(ctx context.Context, payload dto.DepartmentCreateRequest, meta RequestMeta) (models.Department, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Department{}, err
	}

	department := models.Department{Name: payload.Name}

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.departments.WithTx(tx).Create(ctx, &department); err != nil {
			return err
		}
		entry := newAuditLog("department", &department.ID, models.AuditActionCreate, map[string]interface{}{
			"name": department.Name,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return models.Department{}, err
	}

	s.logger.Info().Uint("department_id", department.ID).Msg("department created")

	return department, nil
}
