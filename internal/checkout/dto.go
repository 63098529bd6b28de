package checkout

// PlaceOrderRequest captures the delivery details for the order being placed.
type PlaceOrderRequest struct {
	ShippingAddress string  `json:"shipping_address" validate:"required"`
	Phone           string  `json:"phone" validate:"required"`
	Notes           *string `json:"notes,omitempty"`
}
