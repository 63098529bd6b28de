package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanamaged/electro-backend/pkg/enums"
)

// Product represents a storefront listing.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    uuid.UUID           `gorm:"column:category_id;type:uuid;not null;index"`
	Name          string              `gorm:"column:name;not null"`
	Description   *string             `gorm:"column:description;type:text"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountType  *enums.DiscountType `gorm:"column:discount_type;type:discount_type"`
	DiscountValue decimal.NullDecimal `gorm:"column:discount_value;type:numeric(12,2)"`
	Stock         int                 `gorm:"column:stock;not null;default:0"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	IsFeatured    bool                `gorm:"column:is_featured;not null;default:false"`
	Category      *Category           `gorm:"foreignKey:CategoryID"`
	Images        []ProductImage      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice applies the active discount, if any, clamping at zero.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountType == nil || !p.DiscountValue.Valid {
		return p.Price
	}

	var price decimal.Decimal
	switch *p.DiscountType {
	case enums.DiscountTypePercentage:
		cut := p.Price.Mul(p.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
		price = p.Price.Sub(cut)
	case enums.DiscountTypeFixed:
		price = p.Price.Sub(p.DiscountValue.Decimal)
	default:
		return p.Price
	}

	if price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}
