package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/cart"
	"github.com/hanamaged/electro-backend/internal/orders"
	"github.com/hanamaged/electro-backend/internal/products"
	"github.com/hanamaged/electro-backend/pkg/db"
	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/logger"
)

// Service turns the current cart into a placed order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*orders.OrderDTO, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	DB          *db.Client
	CartRepo    *cart.Repository
	OrderRepo   *orders.Repository
	ProductRepo *products.Repository
	Logger      *logger.Logger
}

type service struct {
	db          *db.Client
	cartRepo    *cart.Repository
	orderRepo   *orders.Repository
	productRepo *products.Repository
	logg        *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		db:          params.DB,
		cartRepo:    params.CartRepo,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		logg:        params.Logger,
	}, nil
}

// PlaceOrder validates the cart, snapshots unit prices into order lines, and
// commits the order, the stock decrements, and the cart clear in a single
// transaction.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*orders.OrderDTO, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	rows, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	order, err := buildOrder(userID, req, rows)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict,
						"insufficient stock for "+item.ProductName)
				}
				return err
			}
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		return s.cartRepo.Clear(tx, userID)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "place order")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order placed")
	return orders.FromModel(order), nil
}

func validatePlaceOrder(req PlaceOrderRequest) error {
	var err error
	if strings.TrimSpace(req.ShippingAddress) == "" {
		err = multierr.Append(err, errors.New("shipping address is required"))
	}
	if strings.TrimSpace(req.Phone) == "" {
		err = multierr.Append(err, errors.New("phone is required"))
	}
	return err
}

// buildOrder converts cart lines into snapshotted order items, checking each
// product is still purchasable before any write happens.
func buildOrder(userID uuid.UUID, req PlaceOrderRequest, rows []models.CartItem) (*models.Order, error) {
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]models.OrderItem, 0, len(rows))
	subtotal := decimal.Zero
	for _, row := range rows {
		product := row.Product
		if product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a cart item no longer exists")
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, product.Name+" is no longer available")
		}
		if product.Stock < row.Quantity {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for "+product.Name)
		}

		item := models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.EffectivePrice(),
			Quantity:    row.Quantity,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	return &models.Order{
		UserID:          userID,
		Status:          enums.OrderStatusPending,
		Subtotal:        subtotal,
		Total:           subtotal,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Phone:           strings.TrimSpace(req.Phone),
		Notes:           req.Notes,
		Items:           items,
	}, nil
}
