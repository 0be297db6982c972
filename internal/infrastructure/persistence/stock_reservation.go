package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockReservation implements order.StockReservationManager. Both
// operations run inside a single transaction with SELECT ... FOR UPDATE
// row locks on the touched variants, so stock can never go negative and
// a partial reservation can never be observed.
type GormStockReservation struct {
	db *gorm.DB
}

// NewGormStockReservation creates a new GormStockReservation
func NewGormStockReservation(db *gorm.DB) *GormStockReservation {
	return &GormStockReservation{db: db}
}

// Reserve locks every variant of the order in a stable order, re-checks
// stock under the lock, decrements all lines, and stamps the
// reservation window on the order row. Any shortfall rolls the whole
// transaction back.
func (s *GormStockReservation) Reserve(ctx context.Context, o *order.Order, window time.Duration) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot reserve stock for an order without items")
	}
	if o.IsReserved {
		return nil
	}

	quantities := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		quantities[item.VariantID] += item.Quantity
	}

	// Locking in a stable order prevents deadlocks between two orders
	// that share variants.
	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	until := time.Now().Add(window)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, variantID := range ids {
			var variant models.ProductVariantModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&variant, "id = ?", variantID).Error; err != nil {
				return shared.ErrNotFound
			}

			needed := quantities[variantID]
			if variant.StockNumber < needed {
				return shared.NewDomainErrorWithCause("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for variant %s: have %d, need %d",
						variant.SKU, variant.StockNumber, needed),
					shared.ErrInsufficientStock)
			}

			if err := tx.Model(&models.ProductVariantModel{}).
				Where("id = ?", variantID).
				UpdateColumn("stock_number", gorm.Expr("stock_number - ?", needed)).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND is_reserved = ?", o.ID, false).
			Updates(map[string]any{
				"is_reserved":    true,
				"reserved_until": until,
				"version":        gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.MarkReserved(until)
	return nil
}

// Release returns the reserved stock and clears the reservation flags
// in the same transaction. Releasing an unreserved or paid order is a
// no-op, so retries and the sweeper cannot double-credit stock.
func (s *GormStockReservation) Release(ctx context.Context, o *order.Order) error {
	if !o.IsReserved || o.Status == order.StatusPaid {
		return nil
	}

	quantities := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		quantities[item.VariantID] += item.Quantity
	}

	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clearing the flag first, guarded on is_reserved, makes the
		// whole release idempotent: a concurrent or repeated release
		// matches zero rows and returns without touching stock.
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND is_reserved = ? AND status <> ?", o.ID, true, order.StatusPaid).
			Updates(map[string]any{
				"is_reserved":    false,
				"reserved_until": nil,
				"version":        gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		for _, variantID := range ids {
			var variant models.ProductVariantModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&variant, "id = ?", variantID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.ProductVariantModel{}).
				Where("id = ?", variantID).
				UpdateColumn("stock_number", gorm.Expr("stock_number + ?", quantities[variantID])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.ClearReservation()
	return nil
}

var _ order.StockReservationManager = (*GormStockReservation)(nil)
