package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage stores an ordered gallery entry for a product.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	URL       string    `gorm:"column:url;type:text;not null"`
	AltText   *string   `gorm:"column:alt_text;type:text"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
