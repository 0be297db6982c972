package order

import (
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteLineRequest is one requested item of a quote or checkout
type QuoteLineRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest represents a request to price a basket
type QuoteRequest struct {
	Lines            []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode       string             `json:"coupon_code"`
	ShippingMethodID uuid.UUID          `json:"shipping_method_id" binding:"required"`
}

// QuoteLineResponse is a priced line in API responses
type QuoteLineResponse struct {
	VariantID      uuid.UUID       `json:"variant_id"`
	SKU            string          `json:"sku"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountedUnit decimal.Decimal `json:"discounted_unit"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// QuoteResponse represents a priced basket. The quote carries no side
// effects and can be requested any number of times.
type QuoteResponse struct {
	Lines              []QuoteLineResponse `json:"lines"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	AppliedCoupon      string              `json:"applied_coupon,omitempty"`
	CouponRejected     string              `json:"coupon_rejected,omitempty"`
	DiscountedSubtotal decimal.Decimal     `json:"discounted_subtotal"`
	ShippingMethodID   uuid.UUID           `json:"shipping_method_id"`
	ShippingCost       decimal.Decimal     `json:"shipping_cost"`
	HandlingFee        decimal.Decimal     `json:"handling_fee"`
	Total              decimal.Decimal     `json:"total"`
	PricedAt           time.Time           `json:"priced_at"`
}

// PlaceOrderRequest represents a checkout request
type PlaceOrderRequest struct {
	CustomerID       uuid.UUID          `json:"customer_id" binding:"required"`
	AddressID        uuid.UUID          `json:"address_id" binding:"required"`
	Lines            []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode       string             `json:"coupon_code"`
	ShippingMethodID uuid.UUID          `json:"shipping_method_id" binding:"required"`
}

// PlaceOrderResponse carries the created order and where to send the
// customer to pay for it
type PlaceOrderResponse struct {
	Order      OrderResponse `json:"order"`
	Authority  string        `json:"authority"`
	PaymentURL string        `json:"payment_url"`
}

// PaymentCallbackRequest is what the payment gateway redirects back with
type PaymentCallbackRequest struct {
	Authority    string `form:"Authority" binding:"required"`
	Status       string `form:"Status" binding:"required"`
	TrackingCode string `form:"tracking_code" binding:"required"`
}

// PaymentCallbackResponse is the outcome of a payment callback
type PaymentCallbackResponse struct {
	Success          bool   `json:"success"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
	TrackingCode     string `json:"tracking_code"`
	Status           string `json:"status"`
	RefID            int64  `json:"ref_id,omitempty"`
	Reason           string `json:"reason,omitempty"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid processing shipped delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	VariantID uuid.UUID       `json:"variant_id"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	TrackingCode     string              `json:"tracking_code"`
	CustomerID       uuid.UUID           `json:"customer_id"`
	Status           string              `json:"status"`
	IsComplete       bool                `json:"is_complete"`
	Items            []OrderItemResponse `json:"items"`
	CouponCode       string              `json:"coupon_code,omitempty"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	DiscountedTotal  decimal.Decimal     `json:"discounted_total"`
	ShippingMethodID uuid.UUID           `json:"shipping_method_id"`
	ShippingCost     decimal.Decimal     `json:"shipping_cost"`
	HandlingFee      decimal.Decimal     `json:"handling_fee"`
	Total            decimal.Decimal     `json:"total"`
	AddressID        uuid.UUID           `json:"address_id"`
	PaymentDate      *time.Time          `json:"payment_date,omitempty"`
	PaymentRef       string              `json:"payment_ref,omitempty"`
	IsReserved       bool                `json:"is_reserved"`
	ReservedUntil    *time.Time          `json:"reserved_until,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ShippingMethodResponse represents a shipping method in API responses
type ShippingMethodResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToQuoteResponse converts a domain Quote to QuoteResponse
func ToQuoteResponse(q *order.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, line := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			VariantID:      line.VariantID,
			SKU:            line.SKU,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice.Amount(),
			DiscountedUnit: line.DiscountedUnit.Amount(),
			LineTotal:      line.LineTotal.Amount(),
		})
	}
	return QuoteResponse{
		Lines:              lines,
		Subtotal:           q.Subtotal.Amount(),
		AppliedCoupon:      q.AppliedCoupon,
		CouponRejected:     q.CouponRejected,
		DiscountedSubtotal: q.DiscountedSubtotal.Amount(),
		ShippingMethodID:   q.ShippingMethodID,
		ShippingCost:       q.ShippingCost.Amount(),
		HandlingFee:        q.HandlingFee.Amount(),
		Total:              q.Total.Amount(),
		PricedAt:           q.PricedAt,
	}
}

// ToOrderItemResponse converts a domain OrderItem to OrderItemResponse
func ToOrderItemResponse(item order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID,
		VariantID: item.VariantID,
		SKU:       item.SKU,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal().Amount(),
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ToOrderItemResponse(item))
	}
	return OrderResponse{
		ID:               o.ID,
		TrackingCode:     o.TrackingCode,
		CustomerID:       o.CustomerID,
		Status:           string(o.Status),
		IsComplete:       o.IsComplete,
		Items:            items,
		CouponCode:       o.CouponCode,
		Subtotal:         o.Subtotal,
		DiscountedTotal:  o.DiscountedTotal,
		ShippingMethodID: o.ShippingMethodID,
		ShippingCost:     o.ShippingCost,
		HandlingFee:      o.HandlingFee,
		Total:            o.Total,
		AddressID:        o.AddressID,
		PaymentDate:      o.PaymentDate,
		PaymentRef:       o.PaymentRef,
		IsReserved:       o.IsReserved,
		ReservedUntil:    o.ReservedUntil,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToShippingMethodResponse converts a domain ShippingMethod
func ToShippingMethodResponse(m *order.ShippingMethod) ShippingMethodResponse {
	return ShippingMethodResponse{
		ID:    m.ID,
		Name:  m.Name,
		Price: m.Price,
	}
}

func toRequestLines(lines []QuoteLineRequest) []order.RequestLine {
	result := make([]order.RequestLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, order.RequestLine{
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		})
	}
	return result
}
