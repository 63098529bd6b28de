package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioItem is a showcase entry rendered on the public portfolio page.
type PortfolioItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	Description *string   `gorm:"type:text"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null"`
	LinkURL     *string   `gorm:"column:link_url;type:text"`
	Position    int       `gorm:"column:position;not null;default:0"`
	IsPublished bool      `gorm:"column:is_published;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
