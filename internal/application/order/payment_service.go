package order

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/payment"
	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	// callbackStatusOK is the gateway's redirect status for an approved payment
	callbackStatusOK = "OK"

	// DefaultIdempotencyTTL is how long processed callback keys are remembered
	DefaultIdempotencyTTL = 24 * time.Hour
)

// Callback rejection reasons
const (
	ReasonCustomerCancelled  = "customer_cancelled"
	ReasonVerificationFailed = "verification_failed"
)

// PaymentServiceConfig holds the dependencies of the payment service
type PaymentServiceConfig struct {
	Orders         order.OrderRepository
	Coupons        promotion.CouponRepository
	Gateway        payment.Gateway
	Idempotency    shared.IdempotencyStore
	Events         shared.EventBus
	Logger         *zap.Logger
	IdempotencyTTL time.Duration
}

// PaymentService finalizes orders when the gateway redirects back
type PaymentService struct {
	orders      order.OrderRepository
	coupons     promotion.CouponRepository
	gateway     payment.Gateway
	idempotency shared.IdempotencyStore
	events      shared.EventBus
	logger      *zap.Logger
	ttl         time.Duration
}

// NewPaymentService creates a new payment service
func NewPaymentService(cfg PaymentServiceConfig) *PaymentService {
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		orders:      cfg.Orders,
		coupons:     cfg.Coupons,
		gateway:     cfg.Gateway,
		idempotency: cfg.Idempotency,
		events:      cfg.Events,
		logger:      logger,
		ttl:         ttl,
	}
}

// HandleCallback processes the gateway redirect for an order. The
// callback is idempotent on the gateway authority: replays and double
// deliveries return the current order state without re-verifying or
// consuming the coupon twice.
func (s *PaymentService) HandleCallback(ctx context.Context, req PaymentCallbackRequest) (*PaymentCallbackResponse, error) {
	o, err := s.orders.FindByTrackingCode(ctx, req.TrackingCode)
	if err != nil {
		return nil, err
	}

	if req.Status != callbackStatusOK {
		s.logger.Info("Payment cancelled by customer",
			zap.String("tracking_code", o.TrackingCode),
			zap.String("authority", req.Authority))
		return &PaymentCallbackResponse{
			Success:      false,
			TrackingCode: o.TrackingCode,
			Status:       string(o.Status),
			Reason:       ReasonCustomerCancelled,
		}, nil
	}

	processed, err := s.idempotency.IsProcessed(ctx, callbackKey(req.Authority))
	if err != nil {
		return nil, err
	}
	if processed || o.Status != order.StatusPending {
		return &PaymentCallbackResponse{
			Success:          o.Status == order.StatusPaid,
			AlreadyProcessed: true,
			TrackingCode:     o.TrackingCode,
			Status:           string(o.Status),
		}, nil
	}

	result, err := s.gateway.VerifyPayment(ctx, req.Authority, o.Total)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentRejected) {
			s.logger.Warn("Payment verification rejected",
				zap.String("tracking_code", o.TrackingCode),
				zap.String("authority", req.Authority),
				zap.Error(err))
			return &PaymentCallbackResponse{
				Success:      false,
				TrackingCode: o.TrackingCode,
				Status:       string(o.Status),
				Reason:       ReasonVerificationFailed,
			}, nil
		}
		return nil, err
	}

	now := time.Now()
	if err := o.MarkPaid(paymentRef(result.RefID), now); err != nil {
		if errors.Is(err, shared.ErrAlreadyPaid) {
			return &PaymentCallbackResponse{
				Success:          true,
				AlreadyProcessed: true,
				TrackingCode:     o.TrackingCode,
				Status:           string(o.Status),
			}, nil
		}
		return nil, err
	}

	if o.HasCoupon() {
		// The discount is already baked into the totals, so a consume
		// failure here is logged rather than unwinding the payment.
		if err := s.coupons.ConsumeUse(ctx, o.CouponCode, now); err != nil {
			s.logger.Warn("Failed to consume coupon use at payment",
				zap.String("tracking_code", o.TrackingCode),
				zap.String("coupon_code", o.CouponCode),
				zap.Error(err))
		}
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	// The key is recorded only after the order is persisted, so a
	// transient failure above leaves the callback retryable. A gateway
	// replay that slips past the check is still caught by the verify
	// call reporting the payment as already verified.
	if _, err := s.idempotency.MarkProcessed(ctx, callbackKey(req.Authority), s.ttl); err != nil {
		s.logger.Warn("Failed to record processed callback",
			zap.String("authority", req.Authority),
			zap.Error(err))
	}

	s.logger.Info("Payment confirmed",
		zap.String("tracking_code", o.TrackingCode),
		zap.String("authority", req.Authority),
		zap.Int64("ref_id", result.RefID),
		zap.Bool("already_verified", result.AlreadyVerified))

	publishDomainEvents(ctx, s.events, s.logger, o)

	return &PaymentCallbackResponse{
		Success:      true,
		TrackingCode: o.TrackingCode,
		Status:       string(o.Status),
		RefID:        result.RefID,
	}, nil
}

func callbackKey(authority string) string {
	return "callback:" + authority
}

func paymentRef(refID int64) string {
	return strconv.FormatInt(refID, 10)
}
