package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
)

// CatalogFilter narrows catalog queries.
type CatalogFilter struct {
	Type     string
	Category string
	Required *bool
}

// CatalogRepository persists training catalog entries.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository
	Create(ctx context.Context, entry *models.CatalogEntry) error
	GetByID(ctx context.Context, id uint) (models.CatalogEntry, error)
	List(ctx context.Context, filter CatalogFilter) ([]models.CatalogEntry, error)
	Update(ctx context.Context, entry *models.CatalogEntry) error
	Delete(ctx context.Context, id uint) (bool, error)
	ListRequired(ctx context.Context) ([]models.CatalogEntry, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository constructs the catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepository{db: tx}
}

func (r *catalogRepository) Create(ctx context.Context, entry *models.CatalogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *catalogRepository) GetByID(ctx context.Context, id uint) (models.CatalogEntry, error) {
	var entry models.CatalogEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	return entry, err
}

func (r *catalogRepository) List(ctx context.Context, filter CatalogFilter) ([]models.CatalogEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.CatalogEntry{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Required != nil {
		query = query.Where("is_required = ?", *filter.Required)
	}

	var entries []models.CatalogEntry
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *catalogRepository) Update(ctx context.Context, entry *models.CatalogEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a catalog entry and reports whether a row was actually
// removed. Deleting an unknown id is not an error.
func (r *catalogRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CatalogEntry{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *catalogRepository) ListRequired(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	err := r.db.WithContext(ctx).
		Where("is_required = ?", true).
		Order("title ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
