package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// EnrollmentFilter narrows enrollment queries.
type EnrollmentFilter struct {
	SessionID  uint
	EmployeeID uint
	Status     string
}

// CompletedTraining is a flattened view of a completed enrollment joined with
// its catalog entry, used by the compliance aggregator.
type CompletedTraining struct {
	EmployeeID     uint       `json:"employee_id"`
	CatalogID      uint       `json:"catalog_id"`
	CatalogTitle   string     `json:"catalog_title"`
	ValidityMonths int        `json:"validity_months"`
	CompletionDate *time.Time `json:"completion_date"`
}

// EnrollmentRepository persists enrollments.
type EnrollmentRepository interface {
	WithTx(tx *gorm.DB) EnrollmentRepository
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (models.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, sessionID, employeeID uint) (bool, error)
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListCompleted(ctx context.Context) ([]CompletedTraining, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs the enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) WithTx(tx *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: tx}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).First(&enrollment, id).Error
	return enrollment, err
}

func (r *enrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).Model(&models.Enrollment{})

	if filter.SessionID != 0 {
		query = query.Where("session_id = ?", filter.SessionID)
	}

	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var enrollments []models.Enrollment
	if err := query.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *enrollmentRepository) Exists(ctx context.Context, sessionID, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("session_id = ? AND employee_id = ?", sessionID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) ListCompleted(ctx context.Context) ([]CompletedTraining, error) {
	var rows []CompletedTraining
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Select("enrollments.employee_id, sessions.catalog_id, catalog_entries.title AS catalog_title, catalog_entries.validity_months, enrollments.completion_date").
		Joins("JOIN sessions ON sessions.id = enrollments.session_id").
		Joins("JOIN catalog_entries ON catalog_entries.id = sessions.catalog_id").
		Where("enrollments.status = ?", models.EnrollmentStatusCompleted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
