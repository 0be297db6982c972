package promotion

import (
	"context"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CouponRepository defines persistence operations for coupons
type CouponRepository interface {
	Save(ctx context.Context, coupon *Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Coupon], error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeUse increments the usage counter of the coupon if and only
	// if the coupon is active, valid at the given instant, and still
	// below its usage cap. The check and increment happen in a single
	// statement so concurrent orders cannot push the counter past the
	// cap. Returns ErrCouponExhausted when the cap is already reached
	// and ErrCouponInvalid when the coupon is inactive or outside its
	// validity window.
	ConsumeUse(ctx context.Context, code string, at time.Time) error

	// ReleaseUse decrements the usage counter, flooring at zero. Used
	// when an order fails after the coupon was consumed.
	ReleaseUse(ctx context.Context, code string) error
}
