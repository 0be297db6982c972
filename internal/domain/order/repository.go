package order

import (
	"context"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	Save(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByTrackingCode(ctx context.Context, code string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Order], error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindExpiredReservations returns orders still flagged reserved
	// whose window lapsed before the given instant and that were never
	// paid. Used by the background sweeper.
	FindExpiredReservations(ctx context.Context, before time.Time, limit int) ([]*Order, error)
}

// ShippingMethodRepository resolves shipping method references
type ShippingMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingMethod, error)
	FindAll(ctx context.Context) ([]*ShippingMethod, error)
}

// StockReservationManager is the only component allowed to mutate
// variant stock. Both operations run in a single database transaction
// with row locks on the touched variants.
type StockReservationManager interface {
	// Reserve locks every variant of the order, re-checks stock and
	// decrements it, then stamps the reservation window on the order.
	// Any shortfall rolls the whole transaction back and returns an
	// insufficient stock error naming the variant.
	Reserve(ctx context.Context, o *Order, window time.Duration) error

	// Release returns the reserved stock and clears the reservation
	// flags. A release on an unreserved or already paid order is a
	// no-op.
	Release(ctx context.Context, o *Order) error
}
