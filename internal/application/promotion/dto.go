package promotion

import (
	"time"

	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents a request to create a coupon
type CreateCouponRequest struct {
	Code       string          `json:"code" binding:"required,min=1,max=50"`
	Type       string          `json:"type" binding:"required,oneof=percent amount"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	ValidFrom  time.Time       `json:"valid_from" binding:"required"`
	ValidTo    time.Time       `json:"valid_to" binding:"required"`
	MaximumUse int             `json:"maximum_use" binding:"required,min=1"`
}

// CouponListFilter represents filter options for the coupon list
type CouponListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	ValidFrom    time.Time       `json:"valid_from"`
	ValidTo      time.Time       `json:"valid_to"`
	MaximumUse   int             `json:"maximum_use"`
	NumberOfUses int             `json:"number_of_uses"`
	IsActive     bool            `json:"is_active"`
}

// CouponValidationResponse is the outcome of a storefront coupon check.
// It never exposes usage counters to the caller.
type CouponValidationResponse struct {
	Code   string           `json:"code"`
	Valid  bool             `json:"valid"`
	Reason string           `json:"reason,omitempty"`
	Type   string           `json:"type,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToCouponResponse converts a domain Coupon to CouponResponse
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	return CouponResponse{
		ID:           c.ID,
		Code:         c.Code,
		Type:         string(c.Type),
		Amount:       c.Amount,
		ValidFrom:    c.ValidFrom,
		ValidTo:      c.ValidTo,
		MaximumUse:   c.MaximumUse,
		NumberOfUses: c.NumberOfUses,
		IsActive:     c.IsActive,
	}
}
