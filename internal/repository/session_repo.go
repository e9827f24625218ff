package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// SessionFilter narrows session queries.
type SessionFilter struct {
	CatalogID uint
	Status    string
}

// SessionRepository persists training sessions.
type SessionRepository interface {
	WithTx(tx *gorm.DB) SessionRepository
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (models.Session, error)
	List(ctx context.Context, filter SessionFilter) ([]models.Session, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs the session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) WithTx(tx *gorm.DB) SessionRepository {
	return &sessionRepository{db: tx}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Preload("Catalog").First(&session, id).Error
	return session, err
}

func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	query := r.db.WithContext(ctx).Model(&models.Session{}).Preload("Catalog")

	if filter.CatalogID != 0 {
		query = query.Where("catalog_id = ?", filter.CatalogID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var sessions []models.Session
	if err := query.Order("date ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *sessionRepository) ListBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).Preload("Catalog").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("date >= ? AND date <= ?", start, end).
		Count(&count).Error
	return count, err
}
