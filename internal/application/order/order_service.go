package order

import (
	"context"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order lifecycle use cases after checkout
type OrderService struct {
	orders   order.OrderRepository
	shipping order.ShippingMethodRepository
	stock    order.StockReservationManager
	coupons  promotion.CouponRepository
	events   shared.EventBus
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders order.OrderRepository,
	shipping order.ShippingMethodRepository,
	stock order.StockReservationManager,
	coupons promotion.CouponRepository,
	events shared.EventBus,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:   orders,
		shipping: shipping,
		stock:    stock,
		coupons:  coupons,
		events:   events,
		logger:   logger,
	}
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetOrderByTrackingCode retrieves an order by its public tracking code
func (s *OrderService) GetOrderByTrackingCode(ctx context.Context, code string) (*OrderResponse, error) {
	o, err := s.orders.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListOrders retrieves a paginated order list, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	page, err := s.orders.FindAll(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return toOrderPage(page), nil
}

// ListCustomerOrders retrieves the orders of one customer
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	page, err := s.orders.FindByCustomer(ctx, customerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return toOrderPage(page), nil
}

// CancelOrder aborts a pending or paid order, returns its reserved
// stock, and gives back the coupon use when one was consumed at payment.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	wasPaid := o.Status == order.StatusPaid

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	// Persist the cancelled status before releasing: the release guard
	// refuses to restock rows still marked paid.
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err := s.stock.Release(ctx, o); err != nil {
		s.logger.Error("Failed to release stock for cancelled order",
			zap.String("tracking_code", o.TrackingCode),
			zap.Error(err))
		return nil, err
	}

	if wasPaid && o.HasCoupon() {
		if err := s.coupons.ReleaseUse(ctx, o.CouponCode); err != nil {
			s.logger.Warn("Failed to release coupon use for cancelled order",
				zap.String("tracking_code", o.TrackingCode),
				zap.String("coupon_code", o.CouponCode),
				zap.Error(err))
		}
	}

	s.logger.Info("Order cancelled",
		zap.String("tracking_code", o.TrackingCode),
		zap.Bool("was_paid", wasPaid))

	publishDomainEvents(ctx, s.events, s.logger, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// StartProcessing moves a paid order into fulfilment
func (s *OrderService) StartProcessing(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.advance(ctx, orderID, (*order.Order).StartProcessing)
}

// ShipOrder marks an order as handed to the carrier
func (s *OrderService) ShipOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.advance(ctx, orderID, (*order.Order).Ship)
}

// DeliverOrder marks an order as received. Delivery also flips the
// completion flag, which emits the completed event exactly once.
func (s *OrderService) DeliverOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Deliver(); err != nil {
		return nil, err
	}
	o.Complete()
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	publishDomainEvents(ctx, s.events, s.logger, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// ListShippingMethods retrieves the available shipping methods
func (s *OrderService) ListShippingMethods(ctx context.Context) ([]ShippingMethodResponse, error) {
	methods, err := s.shipping.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ShippingMethodResponse, 0, len(methods))
	for _, m := range methods {
		result = append(result, ToShippingMethodResponse(m))
	}
	return result, nil
}

func (s *OrderService) advance(ctx context.Context, orderID uuid.UUID, transition func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := transition(o); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	publishDomainEvents(ctx, s.events, s.logger, o)

	response := ToOrderResponse(o)
	return &response, nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}

func toOrderPage(page *shared.Paginated[*order.Order]) *shared.Paginated[OrderResponse] {
	items := make([]OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderResponse(o))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result
}
