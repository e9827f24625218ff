package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	WithTx(tx *gorm.DB) DepartmentRepository
	Create(ctx context.Context, department *models.Department) error
	List(ctx context.Context) ([]models.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository constructs the department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: tx}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}
