package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanamaged/electro-backend/internal/products"
	"github.com/hanamaged/electro-backend/pkg/db/models"
)

// ItemDTO is one cart line with its resolved product and totals.
type ItemDTO struct {
	ID        uuid.UUID            `json:"id"`
	Product   *products.ProductDTO `json:"product"`
	Quantity  int                  `json:"quantity"`
	UnitPrice decimal.Decimal      `json:"unit_price"`
	LineTotal decimal.Decimal      `json:"line_total"`
}

// CartDTO is the full cart with its computed total.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddItemRequest puts a product into the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest replaces a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func itemFromModel(item *models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:       item.ID,
		Quantity: item.Quantity,
	}
	if item.Product != nil {
		dto.Product = products.FromModel(item.Product)
		dto.Product.InCart = true
		dto.UnitPrice = item.Product.EffectivePrice()
		dto.LineTotal = dto.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
	}
	return dto
}
