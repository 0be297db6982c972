package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExpiredReservationHandler releases the stock of reserved orders whose
// window lapsed. It returns how many orders it swept so the loop can
// keep draining a backlog without waiting a full interval.
type ExpiredReservationHandler interface {
	SweepExpired(ctx context.Context, batchSize int) (int, error)
}

// SweeperConfig holds configuration for the reservation sweeper
type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
}

// DefaultSweeperConfig returns default sweeper configuration
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Interval:  time.Minute,
		BatchSize: 100,
	}
}

// ReservationSweeper periodically releases expired stock reservations
type ReservationSweeper struct {
	config  SweeperConfig
	handler ExpiredReservationHandler
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewReservationSweeper creates a new reservation sweeper
func NewReservationSweeper(config SweeperConfig, handler ExpiredReservationHandler, logger *zap.Logger) *ReservationSweeper {
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	return &ReservationSweeper{
		config:  config,
		handler: handler,
		logger:  logger,
	}
}

// Start starts the sweeper loop
func (s *ReservationSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("reservation sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)
	return nil
}

// Stop stops the sweeper gracefully
func (s *ReservationSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("reservation sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ReservationSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep drains full batches until the backlog is empty or the context
// is cancelled
func (s *ReservationSweeper) sweep(ctx context.Context) {
	for {
		swept, err := s.handler.SweepExpired(ctx, s.config.BatchSize)
		if err != nil {
			s.logger.Error("failed to sweep expired reservations", zap.Error(err))
			return
		}
		if swept > 0 {
			s.logger.Info("released expired reservations", zap.Int("count", swept))
		}
		if swept < s.config.BatchSize {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
