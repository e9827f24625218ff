package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// EvaluationFilter narrows evaluation queries.
type EvaluationFilter struct {
	EmployeeID uint
	ManagerID  uint
}

// EvaluationRepository persists effectiveness evaluations.
type EvaluationRepository interface {
	WithTx(tx *gorm.DB) EvaluationRepository
	Create(ctx context.Context, evaluation *models.Evaluation) error
	List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs the evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) WithTx(tx *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: tx}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error) {
	query := r.db.WithContext(ctx).Model(&models.Evaluation{})

	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}

	if filter.ManagerID != 0 {
		query = query.Where("manager_id = ?", filter.ManagerID)
	}

	var items []models.Evaluation
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
