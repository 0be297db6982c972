package order

import (
	"github.com/gearshop/backend/internal/domain/shared"
)

const (
	EventTypeOrderCreated   = "order.created"
	EventTypeOrderPaid      = "order.paid"
	EventTypeOrderCancelled = "order.cancelled"
	EventTypeOrderCompleted = "order.completed"
)

// OrderCreatedEvent is raised when a pending order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	TrackingCode string      `json:"tracking_code"`
	Total        string      `json:"total"`
	Status       OrderStatus `json:"status"`
}

// NewOrderCreatedEvent creates an OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		TrackingCode:    o.TrackingCode,
		Total:           o.Total.String(),
		Status:          o.Status,
	}
}

// OrderPaidEvent is raised when a payment is confirmed
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	TrackingCode string `json:"tracking_code"`
	PaymentRef   string `json:"payment_ref"`
	Total        string `json:"total"`
}

// NewOrderPaidEvent creates an OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, "Order", o.ID),
		TrackingCode:    o.TrackingCode,
		PaymentRef:      o.PaymentRef,
		Total:           o.Total.String(),
	}
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	TrackingCode string `json:"tracking_code"`
}

// NewOrderCancelledEvent creates an OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", o.ID),
		TrackingCode:    o.TrackingCode,
	}
}

// OrderCompletedEvent is raised exactly once, when IsComplete first
// becomes true
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	TrackingCode string `json:"tracking_code"`
	CustomerID   string `json:"customer_id"`
}

// NewOrderCompletedEvent creates an OrderCompletedEvent
func NewOrderCompletedEvent(o *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, "Order", o.ID),
		TrackingCode:    o.TrackingCode,
		CustomerID:      o.CustomerID.String(),
	}
}
