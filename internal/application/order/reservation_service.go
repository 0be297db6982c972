package order

import (
	"context"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"go.uber.org/zap"
)

// ReservationService returns stock held by orders whose reservation
// window lapsed without payment. It backs the periodic sweeper.
type ReservationService struct {
	orders order.OrderRepository
	stock  order.StockReservationManager
	logger *zap.Logger
}

// NewReservationService creates a new reservation service
func NewReservationService(orders order.OrderRepository, stock order.StockReservationManager, logger *zap.Logger) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		orders: orders,
		stock:  stock,
		logger: logger,
	}
}

// SweepExpired releases up to batchSize expired reservations and
// reports how many were released. Paid orders are never returned by the
// expiry query, and a release that loses a race with payment is a
// no-op, so the sweeper can only ever return stock that no buyer holds.
func (s *ReservationService) SweepExpired(ctx context.Context, batchSize int) (int, error) {
	expired, err := s.orders.FindExpiredReservations(ctx, time.Now(), batchSize)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, o := range expired {
		until := o.ReservedUntil
		if err := s.stock.Release(ctx, o); err != nil {
			s.logger.Error("Failed to release expired reservation",
				zap.String("tracking_code", o.TrackingCode),
				zap.Error(err))
			continue
		}
		released++
		s.logger.Info("Released expired reservation",
			zap.String("tracking_code", o.TrackingCode),
			zap.Timep("reserved_until", until))
	}

	return released, nil
}
