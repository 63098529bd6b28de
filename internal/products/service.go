package products

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// Service exposes catalog rules for listings.
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, filter ListFilter, userID *uuid.UUID) (*ListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// UserProductMarker reports which products a user has saved or carted so
// listings can carry per-user flags.
type UserProductMarker interface {
	ProductIDsFor(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	Repo       *Repository
	Categories categoryFinder
	Favorites  UserProductMarker
	Cart       UserProductMarker
}

type service struct {
	repo       *Repository
	categories categoryFinder
	favorites  UserProductMarker
	cart       UserProductMarker
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Categories == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category finder is required")
	}
	return &service{
		repo:       params.Repo,
		categories: params.Categories,
		favorites:  params.Favorites,
		cart:       params.Cart,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	product := &models.Product{
		CategoryID:   req.CategoryID,
		Name:         name,
		Description:  req.Description,
		Price:        req.Price,
		DiscountType: req.DiscountType,
		Stock:        req.Stock,
		IsActive:     true,
		IsFeatured:   req.IsFeatured,
	}
	if req.DiscountValue != nil {
		product.DiscountValue.Decimal = *req.DiscountValue
		product.DiscountValue.Valid = true
	}
	for i, url := range req.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{
			URL:       url,
			Position:  i,
			IsPrimary: i == 0,
		})
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return s.Get(ctx, product.ID, nil)
}

func (s *service) Get(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*ProductDTO, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := FromModel(product)
	if err := s.applyUserFlags(ctx, userID, dto); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, userID *uuid.UUID) (*ListResponse, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	dtos := make([]*ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	if err := s.applyUserFlags(ctx, userID, dtos...); err != nil {
		return nil, err
	}

	return &ListResponse{
		Products: dtos,
		Meta:     pagination.NewMeta(filter.Page, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.DiscountType != nil {
		updates["discount_type"] = *req.DiscountType
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.Get(ctx, id, nil)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) applyUserFlags(ctx context.Context, userID *uuid.UUID, dtos ...*ProductDTO) error {
	if userID == nil || *userID == uuid.Nil {
		return nil
	}

	if s.favorites != nil {
		saved, err := s.favorites.ProductIDsFor(ctx, *userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load favorites")
		}
		for _, dto := range dtos {
			dto.IsFavorite = saved[dto.ID]
		}
	}
	if s.cart != nil {
		carted, err := s.cart.ProductIDsFor(ctx, *userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart contents")
		}
		for _, dto := range dtos {
			dto.InCart = carted[dto.ID]
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

func validateDiscount(discountType *enums.DiscountType, value *decimal.Decimal) error {
	if discountType == nil {
		return nil
	}
	if !discountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}
	if value == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value is required with a discount type")
	}
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}
	if *discountType == enums.DiscountTypePercentage && value.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	return nil
}
