package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/payment"
	"github.com/gearshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultReservationWindow is how long placed orders hold their stock
// before the sweeper returns it.
const DefaultReservationWindow = 10 * time.Minute

// CheckoutServiceConfig holds the dependencies of the checkout service
type CheckoutServiceConfig struct {
	Pricing           *order.PricingEngine
	Orders            order.OrderRepository
	Stock             order.StockReservationManager
	Gateway           payment.Gateway
	Events            shared.EventBus
	Logger            *zap.Logger
	ReservationWindow time.Duration
	// CallbackURL is the endpoint the gateway redirects the customer
	// back to. The order tracking code is appended as a query parameter.
	CallbackURL string
}

// CheckoutService prices baskets and places orders
type CheckoutService struct {
	pricing     *order.PricingEngine
	orders      order.OrderRepository
	stock       order.StockReservationManager
	gateway     payment.Gateway
	events      shared.EventBus
	logger      *zap.Logger
	window      time.Duration
	callbackURL string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(cfg CheckoutServiceConfig) *CheckoutService {
	window := cfg.ReservationWindow
	if window <= 0 {
		window = DefaultReservationWindow
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		pricing:     cfg.Pricing,
		orders:      cfg.Orders,
		stock:       cfg.Stock,
		gateway:     cfg.Gateway,
		events:      cfg.Events,
		logger:      logger,
		window:      window,
		callbackURL: cfg.CallbackURL,
	}
}

// Quote prices a basket without any side effects
func (s *CheckoutService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	quote, err := s.pricing.Price(ctx, toRequestLines(req.Lines), req.CouponCode, req.ShippingMethodID)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// PlaceOrder prices the basket, creates a pending order, reserves stock
// for every line in one transaction, and opens a payment session. When
// the reservation cannot cover every line the order is cancelled and
// nothing is reserved.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	quote, err := s.pricing.Price(ctx, toRequestLines(req.Lines), req.CouponCode, req.ShippingMethodID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(req.CustomerID, req.AddressID, quote, quote.PricedAt)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.stock.Reserve(ctx, o, s.window); err != nil {
		s.abandonOrder(ctx, o)
		return nil, err
	}

	session, err := s.gateway.RequestPayment(ctx, payment.PaymentRequest{
		OrderID:     o.ID,
		Amount:      o.Total,
		Description: fmt.Sprintf("Order %s", o.TrackingCode),
		CallbackURL: fmt.Sprintf("%s?tracking_code=%s", s.callbackURL, o.TrackingCode),
	})
	if err != nil {
		s.logger.Error("Failed to open payment session",
			zap.String("tracking_code", o.TrackingCode),
			zap.Error(err))
		if releaseErr := s.stock.Release(ctx, o); releaseErr != nil {
			s.logger.Error("Failed to release stock after payment session failure",
				zap.String("tracking_code", o.TrackingCode),
				zap.Error(releaseErr))
		}
		s.abandonOrder(ctx, o)
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("tracking_code", o.TrackingCode),
		zap.String("customer_id", o.CustomerID.String()),
		zap.String("total", o.Total.String()),
		zap.String("authority", session.Authority))

	publishDomainEvents(ctx, s.events, s.logger, o)

	return &PlaceOrderResponse{
		Order:      ToOrderResponse(o),
		Authority:  session.Authority,
		PaymentURL: session.RedirectURL,
	}, nil
}

// abandonOrder cancels an order that never became payable
func (s *CheckoutService) abandonOrder(ctx context.Context, o *order.Order) {
	if err := o.Cancel(); err != nil {
		return
	}
	if err := s.orders.Update(ctx, o); err != nil {
		s.logger.Error("Failed to cancel abandoned order",
			zap.String("tracking_code", o.TrackingCode),
			zap.Error(err))
	}
}
