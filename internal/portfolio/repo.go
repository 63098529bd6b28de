package portfolio

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/pkg/db/models"
)

// Repository persists portfolio showcase entries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, item *models.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns entries in display order. publishedOnly hides drafts for the
// public page.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]models.PortfolioItem, error) {
	query := r.db.WithContext(ctx).Model(&models.PortfolioItem{})
	if publishedOnly {
		query = query.Where("is_published = TRUE")
	}

	var rows []models.PortfolioItem
	if err := query.Order("position ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PortfolioItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PortfolioItem{}, "id = ?", id).Error
}
