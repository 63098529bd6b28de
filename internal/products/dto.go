package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// ProductImageDTO is one gallery entry.
type ProductImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text,omitempty"`
	Position  int       `json:"position"`
	IsPrimary bool      `json:"is_primary"`
}

// ProductDTO is the transport shape for a listing. The favorite/in-cart flags
// are resolved for the requesting user and default to false for guests.
type ProductDTO struct {
	ID             uuid.UUID           `json:"id"`
	CategoryID     uuid.UUID           `json:"category_id"`
	CategoryName   string              `json:"category_name,omitempty"`
	Name           string              `json:"name"`
	Description    *string             `json:"description,omitempty"`
	Price          decimal.Decimal     `json:"price"`
	EffectivePrice decimal.Decimal     `json:"effective_price"`
	DiscountType   *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue  *decimal.Decimal    `json:"discount_value,omitempty"`
	Stock          int                 `json:"stock"`
	IsActive       bool                `json:"is_active"`
	IsFeatured     bool                `json:"is_featured"`
	IsFavorite     bool                `json:"is_favorite"`
	InCart         bool                `json:"in_cart"`
	Images         []ProductImageDTO   `json:"images"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// CreateProductRequest carries the admin payload for a new listing.
type CreateProductRequest struct {
	CategoryID    uuid.UUID           `json:"category_id" validate:"required"`
	Name          string              `json:"name" validate:"required"`
	Description   *string             `json:"description,omitempty"`
	Price         decimal.Decimal     `json:"price" validate:"required"`
	DiscountType  *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal    `json:"discount_value,omitempty"`
	Stock         int                 `json:"stock"`
	IsFeatured    bool                `json:"is_featured"`
	ImageURLs     []string            `json:"image_urls,omitempty"`
}

// UpdateProductRequest carries the mutable listing fields. Nil means keep current.
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID          `json:"category_id,omitempty"`
	Name          *string             `json:"name,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Price         *decimal.Decimal    `json:"price,omitempty"`
	DiscountType  *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal    `json:"discount_value,omitempty"`
	Stock         *int                `json:"stock,omitempty"`
	IsActive      *bool               `json:"is_active,omitempty"`
	IsFeatured    *bool               `json:"is_featured,omitempty"`
}

// ListFilter narrows public product listings.
type ListFilter struct {
	CategoryID   *uuid.UUID
	Search       string
	FeaturedOnly bool
	ActiveOnly   bool
	Page         pagination.Params
}

// ListResponse returns one page of products with paging metadata.
type ListResponse struct {
	Products []*ProductDTO   `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice(),
		DiscountType:   p.DiscountType,
		Stock:          p.Stock,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
		Images:         make([]ProductImageDTO, 0, len(p.Images)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.DiscountValue.Valid {
		value := p.DiscountValue.Decimal
		dto.DiscountValue = &value
	}
	if p.Category != nil {
		dto.CategoryName = p.Category.Name
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, ProductImageDTO{
			ID:        img.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			Position:  img.Position,
			IsPrimary: img.IsPrimary,
		})
	}
	return dto
}
