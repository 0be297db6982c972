package catalog

import (
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a discount amount is interpreted
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

// IsValid checks if the type is a valid DiscountType
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercent || t == DiscountTypeAmount
}

// ProductDiscount is a variant-scoped, time-bounded price reduction.
// Multiple valid discounts apply sequentially to the unit price.
type ProductDiscount struct {
	shared.BaseEntity
	shared.SoftDeletable
	VariantID uuid.UUID
	Type      DiscountType
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// NewProductDiscount creates a new product discount
func NewProductDiscount(variantID uuid.UUID, discountType DiscountType, amount decimal.Decimal, start, end time.Time) (*ProductDiscount, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percent or amount")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	if discountType == DiscountTypePercent && amount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Percent discount cannot exceed 100")
	}
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Discount end date must not precede start date")
	}

	return &ProductDiscount{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variantID,
		Type:       discountType,
		Amount:     amount,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}, nil
}

// ValidAt reports whether the discount applies at the given instant.
// The caller captures "now" once per logical operation and threads it
// through every validity check.
func (d *ProductDiscount) ValidAt(now time.Time) bool {
	if !d.IsActive || d.IsDeleted {
		return false
	}
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// ApplyTo reduces the given amount by this discount, clamped at zero
func (d *ProductDiscount) ApplyTo(amount valueobject.Money) valueobject.Money {
	var reduced valueobject.Money
	switch d.Type {
	case DiscountTypePercent:
		cut := amount.CalculatePercentage(d.Amount)
		reduced, _ = amount.Subtract(cut)
	case DiscountTypeAmount:
		reduced, _ = amount.Subtract(valueobject.NewMoneyFromDecimal(d.Amount))
	default:
		return amount
	}
	return reduced.ClampZero()
}

// Deactivate withdraws the discount
func (d *ProductDiscount) Deactivate() {
	d.IsActive = false
	d.UpdatedAt = time.Now()
}
