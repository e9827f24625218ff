package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// ComplianceRepository persists compliance requirements.
type ComplianceRepository interface {
	WithTx(tx *gorm.DB) ComplianceRepository
	Create(ctx context.Context, requirement *models.ComplianceRequirement) error
	List(ctx context.Context) ([]models.ComplianceRequirement, error)
}

type complianceRepository struct {
	db *gorm.DB
}

// NewComplianceRepository constructs the compliance requirement repository.
func NewComplianceRepository(db *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) WithTx(tx *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: tx}
}

func (r *complianceRepository) Create(ctx context.Context, requirement *models.ComplianceRequirement) error {
	return r.db.WithContext(ctx).Create(requirement).Error
}

func (r *complianceRepository) List(ctx context.Context) ([]models.ComplianceRequirement, error) {
	var requirements []models.ComplianceRequirement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}
