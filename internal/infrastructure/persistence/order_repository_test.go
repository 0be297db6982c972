package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")
	o := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 2)})

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.TrackingCode, found.TrackingCode)
	assert.Equal(t, order.StatusPending, found.Status)
	assert.False(t, found.IsComplete)
	require.Len(t, found.Items, 1)
	assert.Equal(t, variant.ID, found.Items[0].VariantID)
	assert.Equal(t, variant.SKU, found.Items[0].SKU)
	assert.Equal(t, 2, found.Items[0].Quantity)

	byCode, err := repo.FindByTrackingCode(ctx, o.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byCode.ID)

	_, err = repo.FindByTrackingCode(ctx, "gs-19700101-0000000000")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormOrderRepository_Update_OptimisticLock(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")
	o := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 2)})

	stale, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)

	require.NoError(t, o.MarkPaid("ref-001", time.Now()))
	require.NoError(t, repo.Update(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, found.Status)
	assert.Equal(t, "ref-001", found.PaymentRef)
	require.NotNil(t, found.PaymentDate)

	// The stale copy never advanced past the stored version.
	require.NoError(t, stale.Cancel())
	err = repo.Update(ctx, stale)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))

	found, err = repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, found.Status)
}

func TestGormOrderRepository_FindByCustomer(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")
	first := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})
	seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})

	page, err := repo.FindByCustomer(ctx, first.CustomerID, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
}

func TestGormOrderRepository_FindAll_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")
	paid := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})
	seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})

	require.NoError(t, paid.MarkPaid("ref-002", time.Now()))
	require.NoError(t, repo.Update(ctx, paid))

	page, err := repo.FindAll(ctx, shared.Filter{
		Page:     1,
		PageSize: 10,
		Filters:  map[string]interface{}{"status": string(order.StatusPaid)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, paid.ID, page.Items[0].ID)
}

func TestGormOrderRepository_FindExpiredReservations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)
	manager := NewGormStockReservation(db)

	variant := seedVariant(t, db, "100.000", 100)
	shippingID := seedShippingMethod(t, db, "15.000")

	expired := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})
	require.NoError(t, manager.Reserve(ctx, expired, -time.Minute))

	live := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})
	require.NoError(t, manager.Reserve(ctx, live, 10*time.Minute))

	// A paid order keeps its stock even after the window lapses.
	paid := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})
	require.NoError(t, manager.Reserve(ctx, paid, -time.Minute))
	require.NoError(t, paid.MarkPaid("ref-003", time.Now()))
	require.NoError(t, repo.Update(ctx, paid))

	list, err := repo.FindExpiredReservations(ctx, time.Now(), 100)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, expired.ID, list[0].ID)
	require.Len(t, list[0].Items, 1)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")
	o := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 1)})

	require.NoError(t, repo.Delete(ctx, o.ID))
	_, err := repo.FindByID(ctx, o.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	err = repo.Delete(ctx, o.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormShippingMethodRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormShippingMethodRepository(db)

	id := seedShippingMethod(t, db, "15.000")

	method, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "standard", method.Name)
	assert.Equal(t, "15.000", method.Price.StringFixed(3))
}
