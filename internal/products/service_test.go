package products

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
)

func TestValidateDiscount(t *testing.T) {
	pct := enums.DiscountTypePercentage
	fixed := enums.DiscountTypeFixed
	ten := decimal.NewFromInt(10)
	overflow := decimal.NewFromInt(150)
	negative := decimal.NewFromInt(-5)

	cases := []struct {
		name    string
		dt      *enums.DiscountType
		value   *decimal.Decimal
		wantErr bool
	}{
		{"no discount", nil, nil, false},
		{"valid percentage", &pct, &ten, false},
		{"valid fixed", &fixed, &overflow, false},
		{"type without value", &pct, nil, true},
		{"percentage over 100", &pct, &overflow, true},
		{"negative value", &fixed, &negative, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDiscount(tc.dt, tc.value)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				typed := pkgerrors.As(err)
				if typed == nil || typed.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation code, got %v", err)
				}
			}
		})
	}
}

func TestEffectivePriceInDTO(t *testing.T) {
	pct := enums.DiscountTypePercentage
	product := &models.Product{
		Name:         "Noise-cancelling headphones",
		Price:        decimal.NewFromInt(200),
		DiscountType: &pct,
		DiscountValue: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(25),
			Valid:   true,
		},
	}

	dto := FromModel(product)
	want := decimal.NewFromInt(150)
	if !dto.EffectivePrice.Equal(want) {
		t.Fatalf("expected effective price %s, got %s", want, dto.EffectivePrice)
	}
	if !dto.Price.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("list price must be untouched, got %s", dto.Price)
	}
}

func TestEffectivePriceClampsAtZero(t *testing.T) {
	fixed := enums.DiscountTypeFixed
	product := &models.Product{
		Price:        decimal.NewFromInt(30),
		DiscountType: &fixed,
		DiscountValue: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(50),
			Valid:   true,
		},
	}

	dto := FromModel(product)
	if !dto.EffectivePrice.Equal(decimal.Zero) {
		t.Fatalf("expected zero, got %s", dto.EffectivePrice)
	}
}
