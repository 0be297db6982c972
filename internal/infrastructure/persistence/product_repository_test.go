package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	product, err := catalog.NewProduct("Gaming Laptop", "gaming-laptop")
	require.NoError(t, err)
	price, err := valueobject.NewMoneyFromString("1500.000")
	require.NoError(t, err)
	_, err = product.AddVariant("LAP-001", price, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", found.Name)
	assert.Equal(t, "gaming-laptop", found.Slug)
	require.Len(t, found.Variants, 1)
	assert.Equal(t, "LAP-001", found.Variants[0].SKU)
	assert.Equal(t, 5, found.Variants[0].StockNumber)

	bySlug, err := repo.FindBySlug(ctx, "Gaming-Laptop")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySlug.ID)
}

func TestGormProductRepository_FindAll_Search(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	for _, name := range []string{"Gaming Laptop", "Office Laptop", "Desk Lamp"} {
		p, err := catalog.NewProduct(name, "slug-"+uuid.NewString()[:8])
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}

	list, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Search: "LAPTOP"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := repo.Count(ctx, shared.Filter{Search: "laptop"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormProductRepository_FindAll_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		p, err := catalog.NewProduct(name, "slug-"+uuid.NewString()[:8])
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}

	page, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Charlie", page[0].Name)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	product, err := catalog.NewProduct("Gaming Laptop", "gaming-laptop")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	err = repo.Delete(ctx, product.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormVariantRepository_SavePreservesStock(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormVariantRepository(db)
	manager := NewGormStockReservation(db)

	variant := seedVariant(t, db, "100.000", 10)
	shippingID := seedShippingMethod(t, db, "15.000")

	// Stock moves through reservations, not through catalog edits.
	o := seedOrder(t, db, shippingID, []order.QuoteLine{quoteLine(variant, 3)})
	require.NoError(t, manager.Reserve(ctx, o, 10*time.Minute))

	newPrice, err := valueobject.NewMoneyFromString("120.000")
	require.NoError(t, err)
	variant.Price = newPrice.Amount()
	require.NoError(t, repo.Save(ctx, variant))

	reloaded, err := repo.FindByID(ctx, variant.ID)
	require.NoError(t, err)
	assert.Equal(t, "120.000", reloaded.Price.StringFixed(3))
	assert.Equal(t, 7, reloaded.StockNumber)
}

func TestGormVariantRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormVariantRepository(db)

	first := seedVariant(t, db, "100.000", 10)
	second := seedVariant(t, db, "200.000", 10)
	seedVariant(t, db, "300.000", 10)

	list, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
