package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// AttachmentFilter narrows attachment queries.
type AttachmentFilter struct {
	EnrollmentID uint
	SessionID    uint
}

// AttachmentRepository persists evidence attachment metadata.
type AttachmentRepository interface {
	WithTx(tx *gorm.DB) AttachmentRepository
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uint) (models.Attachment, error)
	List(ctx context.Context, filter AttachmentFilter) ([]models.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository constructs the attachment repository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) WithTx(tx *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: tx}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uint) (models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.WithContext(ctx).First(&attachment, id).Error
	return attachment, err
}

func (r *attachmentRepository) List(ctx context.Context, filter AttachmentFilter) ([]models.Attachment, error) {
	query := r.db.WithContext(ctx).Model(&models.Attachment{})

	if filter.EnrollmentID != 0 {
		query = query.Where("enrollment_id = ?", filter.EnrollmentID)
	}

	if filter.SessionID != 0 {
		query = query.Where("session_id = ?", filter.SessionID)
	}

	var items []models.Attachment
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
