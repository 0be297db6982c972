package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RequestLine is one requested item of a quote
type RequestLine struct {
	VariantID uuid.UUID
	Quantity  int
}

// QuoteLine is a priced line of a quote
type QuoteLine struct {
	VariantID      uuid.UUID
	SKU            string
	Quantity       int
	UnitPrice      valueobject.Money
	DiscountedUnit valueobject.Money
	LineTotal      valueobject.Money
}

// Quote is the result of pricing a set of lines. It carries no side
// effects: coupon usage is only consumed when the order is finalized.
type Quote struct {
	Lines              []QuoteLine
	Subtotal           valueobject.Money
	AppliedCoupon      string
	CouponRejected     string
	DiscountedSubtotal valueobject.Money
	ShippingMethodID   uuid.UUID
	ShippingCost       valueobject.Money
	HandlingFee        valueobject.Money
	Total              valueobject.Money
	PricedAt           time.Time
}

// CatalogReader resolves variants for pricing
type CatalogReader interface {
	FindVariant(ctx context.Context, variantID uuid.UUID) (*catalog.ProductVariant, error)
}

// DiscountResolver returns the discounts valid for a variant at the
// given instant, ordered by start date then id
type DiscountResolver interface {
	FindValidForVariant(ctx context.Context, variantID uuid.UUID, at time.Time) ([]catalog.ProductDiscount, error)
}

// CouponResolver looks up a coupon by its normalized code
type CouponResolver interface {
	FindByCode(ctx context.Context, code string) (*promotion.Coupon, error)
}

// ShippingResolver resolves a shipping method reference
type ShippingResolver interface {
	FindShippingMethod(ctx context.Context, id uuid.UUID) (*ShippingMethod, error)
}

// PricingEngine computes order totals. It is a pure calculator over the
// catalog, discount and coupon read models.
type PricingEngine struct {
	catalog   CatalogReader
	discounts DiscountResolver
	coupons   CouponResolver
	shipping  ShippingResolver
	handling  valueobject.Money
}

// NewPricingEngine creates a pricing engine with a fixed handling fee
func NewPricingEngine(
	catalogReader CatalogReader,
	discounts DiscountResolver,
	coupons CouponResolver,
	shipping ShippingResolver,
	handlingFee valueobject.Money,
) *PricingEngine {
	return &PricingEngine{
		catalog:   catalogReader,
		discounts: discounts,
		coupons:   coupons,
		shipping:  shipping,
		handling:  handlingFee,
	}
}

// Price builds a quote for the requested lines. The instant "now" is
// captured once here and threaded through every discount and coupon
// validity check, so a quote is internally consistent even when a
// window boundary passes mid-calculation.
func (e *PricingEngine) Price(ctx context.Context, lines []RequestLine, couponCode string, shippingMethodID uuid.UUID) (*Quote, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Quote must contain at least one line")
	}
	if shippingMethodID == uuid.Nil {
		return nil, shared.ErrMissingShipping
	}

	now := time.Now()

	method, err := e.shipping.FindShippingMethod(ctx, shippingMethodID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Lines:            make([]QuoteLine, 0, len(lines)),
		Subtotal:         valueobject.Zero(),
		ShippingMethodID: method.ID,
		ShippingCost:     method.PriceMoney(),
		HandlingFee:      e.handling,
		PricedAt:         now,
	}

	for _, line := range lines {
		priced, err := e.priceLine(ctx, line, now)
		if err != nil {
			return nil, err
		}
		quote.Lines = append(quote.Lines, *priced)
		quote.Subtotal = quote.Subtotal.MustAdd(priced.LineTotal)
	}

	quote.DiscountedSubtotal = quote.Subtotal
	if couponCode != "" {
		coupon, err := e.coupons.FindByCode(ctx, couponCode)
		switch {
		case err != nil:
			// unknown code is reported, not fatal
			quote.CouponRejected = couponCode
		case !coupon.ValidAt(now):
			quote.CouponRejected = coupon.Code
		default:
			quote.AppliedCoupon = coupon.Code
			quote.DiscountedSubtotal = coupon.ApplyTo(quote.Subtotal)
		}
	}

	quote.Total = quote.DiscountedSubtotal.
		MustAdd(quote.ShippingCost).
		MustAdd(quote.HandlingFee).
		Round(valueobject.MoneyScale)

	return quote, nil
}

func (e *PricingEngine) priceLine(ctx context.Context, line RequestLine, now time.Time) (*QuoteLine, error) {
	if line.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Quantity for variant %s must be at least 1", line.VariantID))
	}

	variant, err := e.catalog.FindVariant(ctx, line.VariantID)
	if err != nil {
		return nil, err
	}
	if !variant.IsActive {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Variant %s is not available", line.VariantID))
	}

	discounts, err := e.discounts.FindValidForVariant(ctx, variant.ID, now)
	if err != nil {
		return nil, err
	}

	unit := variant.PriceMoney()
	discounted := unit
	for _, d := range discounts {
		discounted = d.ApplyTo(discounted)
	}

	return &QuoteLine{
		VariantID:      variant.ID,
		SKU:            variant.SKU,
		Quantity:       line.Quantity,
		UnitPrice:      unit,
		DiscountedUnit: discounted.Round(valueobject.MoneyScale),
		LineTotal:      discounted.Round(valueobject.MoneyScale).MultiplyByInt(int64(line.Quantity)),
	}, nil
}
