package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// FeedbackFilter narrows feedback queries.
type FeedbackFilter struct {
	SessionID  uint
	EmployeeID uint
}

// FeedbackRepository persists session feedback.
type FeedbackRepository interface {
	WithTx(tx *gorm.DB) FeedbackRepository
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error)
	ExistsForEnrollment(ctx context.Context, enrollmentID uint) (bool, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository constructs the feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) WithTx(tx *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: tx}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{})

	if filter.SessionID != 0 {
		query = query.Where("session_id = ?", filter.SessionID)
	}

	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}

	var items []models.Feedback
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *feedbackRepository) ExistsForEnrollment(ctx context.Context, enrollmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("enrollment_id = ?", enrollmentID).
		Count(&count).Error
	return count > 0, err
}
