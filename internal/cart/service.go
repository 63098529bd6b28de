package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/products"
	"github.com/hanamaged/electro-backend/pkg/db/models"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
)

// Service exposes business rules for cart management.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: params.Repo, productRepo: params.ProductRepo}, nil
}

// Get returns the cart with per-line and overall totals.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
	}
	return buildCart(rows), nil
}

// AddItem validates the product and upserts the line, incrementing quantity
// when the product is already carted.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	// The ceiling applies to the merged line, not just this increment.
	merged := req.Quantity
	if existing, err := s.repo.FindByProduct(ctx, userID, req.ProductID); err == nil {
		merged += existing.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}
	if product.Stock < merged {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "not enough stock")
	}

	if err := s.repo.Upsert(ctx, userID, req.ProductID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart item")
	}
	return s.Get(ctx, userID)
}

// UpdateItem replaces a line's quantity.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := s.findItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.SetQuantity(ctx, userID, itemID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return s.Get(ctx, userID)
}

// RemoveItem drops one line.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error) {
	if _, err := s.findItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, userID, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(s.repo.db.WithContext(ctx), userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) findItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if _, err := s.repo.FindItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	return nil, nil
}

func buildCart(rows []models.CartItem) *CartDTO {
	cart := &CartDTO{
		Items: make([]ItemDTO, 0, len(rows)),
		Total: decimal.Zero,
	}
	for i := range rows {
		item := itemFromModel(&rows[i])
		cart.Items = append(cart.Items, item)
		cart.Total = cart.Total.Add(item.LineTotal)
	}
	cart.Total = cart.Total.Round(2)
	return cart
}
