package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		StatusPending:    {StatusPaid, StatusCancelled},
		StatusPaid:       {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ShippingMethod is a reference to how the order will be delivered
type ShippingMethod struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// PriceMoney returns the shipping cost as Money
func (m ShippingMethod) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyFromDecimal(m.Price)
}

// OrderItem is a line of an order. UnitPrice is a snapshot of the
// discounted unit price at quote time and never changes afterwards.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	VariantID uuid.UUID
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int
	CreatedAt time.Time
}

// LineTotal returns unit price times quantity
func (i OrderItem) LineTotal() valueobject.Money {
	return valueobject.NewMoneyFromDecimal(i.UnitPrice).MultiplyByInt(int64(i.Quantity))
}

// Order is the aggregate root of the purchase flow
type Order struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	TrackingCode     string
	CustomerID       uuid.UUID
	Status           OrderStatus
	IsComplete       bool
	Items            []OrderItem
	CouponCode       string
	Subtotal         decimal.Decimal
	DiscountedTotal  decimal.Decimal
	ShippingMethodID uuid.UUID
	ShippingCost     decimal.Decimal
	HandlingFee      decimal.Decimal
	Total            decimal.Decimal
	AddressID        uuid.UUID
	PaymentDate      *time.Time
	PaymentRef       string
	IsReserved       bool
	ReservedUntil    *time.Time
}

// NewOrder creates a pending order from a priced quote. The tracking code
// is assigned here and never regenerated.
func NewOrder(customerID uuid.UUID, addressID uuid.UUID, quote *Quote, now time.Time) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order customer cannot be empty")
	}
	if addressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Order address cannot be empty")
	}
	if quote == nil || len(quote.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	code, err := generateTrackingCode(now)
	if err != nil {
		return nil, fmt.Errorf("generate tracking code: %w", err)
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrackingCode:      code,
		CustomerID:        customerID,
		Status:            StatusPending,
		CouponCode:        quote.AppliedCoupon,
		Subtotal:          quote.Subtotal.Amount(),
		DiscountedTotal:   quote.DiscountedSubtotal.Amount(),
		ShippingMethodID:  quote.ShippingMethodID,
		ShippingCost:      quote.ShippingCost.Amount(),
		HandlingFee:       quote.HandlingFee.Amount(),
		Total:             quote.Total.Amount(),
		AddressID:         addressID,
	}

	for _, line := range quote.Lines {
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			VariantID: line.VariantID,
			SKU:       line.SKU,
			UnitPrice: line.DiscountedUnit.Amount(),
			Quantity:  line.Quantity,
			CreatedAt: o.CreatedAt,
		})
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// generateTrackingCode builds gs-<yyyymmdd>-<10 hex chars>
func generateTrackingCode(now time.Time) (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs-%s-%s", now.Format("20060102"), hex.EncodeToString(buf)), nil
}

// MarkReserved records that stock for every item has been set aside
func (o *Order) MarkReserved(until time.Time) {
	o.IsReserved = true
	o.ReservedUntil = &until
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// ClearReservation drops the reservation flags. Called by the stock
// manager in the same transaction that returns stock, so a repeated
// release sees IsReserved == false and does nothing.
func (o *Order) ClearReservation() {
	o.IsReserved = false
	o.ReservedUntil = nil
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// ReservationExpired reports whether the reservation window has passed
func (o *Order) ReservationExpired(now time.Time) bool {
	return o.IsReserved && o.ReservedUntil != nil && o.ReservedUntil.Before(now)
}

// MarkPaid transitions a pending order to paid and records the payment
func (o *Order) MarkPaid(ref string, paidAt time.Time) error {
	if o.Status == StatusPaid {
		return shared.ErrAlreadyPaid
	}
	if !o.Status.CanTransitionTo(StatusPaid) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot pay order in status %s", o.Status))
	}
	o.Status = StatusPaid
	o.PaymentDate = &paidAt
	o.PaymentRef = ref
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderPaidEvent(o))
	return nil
}

// Cancel aborts the order. Allowed from pending and paid only.
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel order in status %s", o.Status))
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// StartProcessing moves a paid order into fulfilment
func (o *Order) StartProcessing() error {
	return o.transition(StatusProcessing)
}

// Ship marks the order as handed to the carrier
func (o *Order) Ship() error {
	return o.transition(StatusShipped)
}

// Deliver marks the order as received by the customer
func (o *Order) Deliver() error {
	return o.transition(StatusDelivered)
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Complete flips the completion flag. Side effects fire only on the
// false to true edge: calling Complete on an already complete order
// emits nothing.
func (o *Order) Complete() {
	if o.IsComplete {
		return
	}
	o.IsComplete = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCompletedEvent(o))
}

// TotalMoney returns the grand total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyFromDecimal(o.Total)
}

// HasCoupon reports whether a coupon was applied at quote time
func (o *Order) HasCoupon() bool {
	return o.CouponCode != ""
}
