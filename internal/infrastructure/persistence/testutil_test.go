package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with all tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProductModel{},
		&models.ProductVariantModel{},
		&models.CategoryModel{},
		&models.ProductDiscountModel{},
		&models.CouponModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.ShippingMethodModel{},
	)
	require.NoError(t, err)

	return db
}

// seedVariant inserts a product with one variant and returns the variant
func seedVariant(t *testing.T, db *gorm.DB, price string, stock int) *catalog.ProductVariant {
	t.Helper()

	product, err := catalog.NewProduct("Test Product "+uuid.NewString()[:8], "test-"+uuid.NewString()[:8])
	require.NoError(t, err)

	money, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	variant, err := product.AddVariant("SKU-"+uuid.NewString()[:8], money, stock)
	require.NoError(t, err)

	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return variant
}

// seedShippingMethod inserts a shipping method row
func seedShippingMethod(t *testing.T, db *gorm.DB, price string) uuid.UUID {
	t.Helper()

	now := time.Now()
	model := models.ShippingMethodModel{
		ID:        uuid.New(),
		Name:      "standard",
		Price:     decimal.RequireFromString(price),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// seedOrder builds and persists a pending order for the given lines
func seedOrder(t *testing.T, db *gorm.DB, shippingID uuid.UUID, lines []order.QuoteLine) *order.Order {
	t.Helper()

	quote := &order.Quote{
		Lines:              lines,
		Subtotal:           valueobject.Zero(),
		DiscountedSubtotal: valueobject.Zero(),
		ShippingMethodID:   shippingID,
		ShippingCost:       valueobject.Zero(),
		HandlingFee:        valueobject.Zero(),
		Total:              valueobject.Zero(),
		PricedAt:           time.Now(),
	}
	for _, line := range lines {
		quote.Subtotal = quote.Subtotal.MustAdd(line.LineTotal)
	}
	quote.DiscountedSubtotal = quote.Subtotal
	quote.Total = quote.Subtotal

	o, err := order.NewOrder(uuid.New(), uuid.New(), quote, time.Now())
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

// quoteLine builds a QuoteLine for a seeded variant
func quoteLine(v *catalog.ProductVariant, qty int) order.QuoteLine {
	unit := v.PriceMoney()
	return order.QuoteLine{
		VariantID:      v.ID,
		SKU:            v.SKU,
		Quantity:       qty,
		UnitPrice:      unit,
		DiscountedUnit: unit,
		LineTotal:      unit.MultiplyByInt(int64(qty)),
	}
}
