package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// OrderItemDTO is one snapshotted order line.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDTO is the API shape of a placed order.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Total           decimal.Decimal   `json:"total"`
	ShippingAddress string            `json:"shipping_address"`
	Phone           string            `json:"phone"`
	Notes           *string           `json:"notes,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ListRequest pages a customer's own orders.
type ListRequest struct {
	pagination.Params
}

// AdminListRequest pages all orders, optionally filtered by status.
type AdminListRequest struct {
	Status *enums.OrderStatus
	pagination.Params
}

// ListResponse is one page of orders.
type ListResponse struct {
	Items []OrderDTO      `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// UpdateStatusRequest moves an order along its fulfillment path.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FromModel converts a stored order into its API shape.
func FromModel(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		Subtotal:        order.Subtotal,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
