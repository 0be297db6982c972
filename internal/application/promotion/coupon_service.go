package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Validation reasons returned by ValidateCoupon
const (
	ReasonNotFound   = "not_found"
	ReasonInactive   = "inactive"
	ReasonNotStarted = "not_started"
	ReasonExpired    = "expired"
	ReasonExhausted  = "exhausted"
)

// CouponService handles coupon use cases
type CouponService struct {
	coupons promotion.CouponRepository
}

// NewCouponService creates a new coupon service
func NewCouponService(coupons promotion.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons}
}

// CreateCoupon creates a new coupon
func (s *CouponService) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.coupons.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A coupon with this code already exists")
	}

	coupon, err := promotion.NewCoupon(req.Code, promotion.CouponType(req.Type), req.Amount, req.ValidFrom, req.ValidTo, req.MaximumUse)
	if err != nil {
		return nil, err
	}

	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, err
	}

	response := ToCouponResponse(coupon)
	return &response, nil
}

// ValidateCoupon checks whether a coupon code can be applied right now.
// The check is advisory: the authoritative gate is the atomic use
// consumption at payment time.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string) (*CouponValidationResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	now := time.Now()

	coupon, err := s.coupons.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &CouponValidationResponse{Code: normalized, Valid: false, Reason: ReasonNotFound}, nil
		}
		return nil, err
	}

	response := &CouponValidationResponse{Code: coupon.Code}
	switch {
	case !coupon.IsActive || coupon.IsDeleted:
		response.Reason = ReasonInactive
	case now.Before(coupon.ValidFrom):
		response.Reason = ReasonNotStarted
	case now.After(coupon.ValidTo):
		response.Reason = ReasonExpired
	case coupon.Exhausted():
		response.Reason = ReasonExhausted
	default:
		response.Valid = true
		response.Type = string(coupon.Type)
		amount := coupon.Amount
		response.Amount = &amount
	}

	return response, nil
}

// GetCoupon retrieves a coupon by ID
func (s *CouponService) GetCoupon(ctx context.Context, couponID uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.coupons.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// ListCoupons retrieves a paginated coupon list
func (s *CouponService) ListCoupons(ctx context.Context, filter CouponListFilter) (*shared.Paginated[CouponResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	page, err := s.coupons.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]CouponResponse, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, ToCouponResponse(c))
	}

	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// DeactivateCoupon withdraws a coupon before its window closes
func (s *CouponService) DeactivateCoupon(ctx context.Context, couponID uuid.UUID) error {
	coupon, err := s.coupons.FindByID(ctx, couponID)
	if err != nil {
		return err
	}
	coupon.Deactivate()
	return s.coupons.Save(ctx, coupon)
}

// DeleteCoupon soft-deletes a coupon
func (s *CouponService) DeleteCoupon(ctx context.Context, couponID uuid.UUID) error {
	return s.coupons.Delete(ctx, couponID)
}
