package promotion

import (
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CouponType represents how a coupon amount is interpreted
type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeAmount  CouponType = "amount"
)

// IsValid checks if the type is a valid CouponType
func (t CouponType) IsValid() bool {
	return t == CouponTypePercent || t == CouponTypeAmount
}

// Coupon is an order-wide discount code with a usage cap and a validity
// window. It applies once to the pre-shipping order subtotal.
type Coupon struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Code         string
	Type         CouponType
	Amount       decimal.Decimal
	ValidFrom    time.Time
	ValidTo      time.Time
	MaximumUse   int
	NumberOfUses int
	IsActive     bool
}

// NewCoupon creates a new coupon
func NewCoupon(code string, couponType CouponType, amount decimal.Decimal, validFrom, validTo time.Time, maximumUse int) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 50 characters")
	}
	if !couponType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COUPON_TYPE", "Coupon type must be percent or amount")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Coupon amount cannot be negative")
	}
	if couponType == CouponTypePercent && amount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Percent coupon cannot exceed 100")
	}
	if validTo.Before(validFrom) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Coupon end date must not precede start date")
	}
	if maximumUse <= 0 {
		return nil, shared.NewDomainError("INVALID_MAXIMUM_USE", "Coupon maximum use must be positive")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Type:              couponType,
		Amount:            amount,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		MaximumUse:        maximumUse,
		NumberOfUses:      0,
		IsActive:          true,
	}, nil
}

// ValidAt reports whether the coupon can be applied at the given instant.
// A coupon whose uses have reached the cap is invalid.
func (c *Coupon) ValidAt(now time.Time) bool {
	if !c.IsActive || c.IsDeleted {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	return c.NumberOfUses < c.MaximumUse
}

// Exhausted reports whether the usage cap has been reached
func (c *Coupon) Exhausted() bool {
	return c.NumberOfUses >= c.MaximumUse
}

// ApplyTo reduces the given amount by this coupon, clamped at zero
func (c *Coupon) ApplyTo(amount valueobject.Money) valueobject.Money {
	var reduced valueobject.Money
	switch c.Type {
	case CouponTypePercent:
		cut := amount.CalculatePercentage(c.Amount)
		reduced, _ = amount.Subtract(cut)
	case CouponTypeAmount:
		reduced, _ = amount.Subtract(valueobject.NewMoneyFromDecimal(c.Amount))
	default:
		return amount
	}
	return reduced.ClampZero()
}

// Deactivate withdraws the coupon
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
