package catalog

import (
	"testing"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("Trail Helmet", "Trail-Helmet")
	require.NoError(t, err)

	assert.Equal(t, "Trail Helmet", product.Name)
	assert.Equal(t, "trail-helmet", product.Slug)
	assert.Equal(t, ProductStatusDraft, product.Status)
	assert.Empty(t, product.Variants)

	events := product.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductCreated, events[0].EventType())

	_, err = NewProduct("", "slug")
	assert.Error(t, err)
	_, err = NewProduct("Name", " ")
	assert.Error(t, err)
}

func TestProduct_AddVariant(t *testing.T) {
	product, err := NewProduct("Trail Helmet", "trail-helmet")
	require.NoError(t, err)

	variant, err := product.AddVariant("hel-red-m", valueobject.NewMoneyFromFloat(100), 5)
	require.NoError(t, err)
	assert.Equal(t, "HEL-RED-M", variant.SKU)
	assert.Equal(t, "100.000", variant.PriceMoney().StringFixed(3))
	assert.Equal(t, 5, variant.StockNumber)
	assert.True(t, variant.IsActive)

	// duplicate SKU on the same product is rejected
	_, err = product.AddVariant("HEL-RED-M", valueobject.NewMoneyFromFloat(110), 2)
	assert.Error(t, err)

	_, err = product.AddVariant("", valueobject.NewMoneyFromFloat(10), 1)
	assert.Error(t, err)
	_, err = product.AddVariant("HEL-BLU-M", valueobject.NewMoneyFromFloat(-1), 1)
	assert.Error(t, err)
	_, err = product.AddVariant("HEL-BLU-M", valueobject.NewMoneyFromFloat(10), -1)
	assert.Error(t, err)
}

func TestProduct_Publish(t *testing.T) {
	product, err := NewProduct("Trail Helmet", "trail-helmet")
	require.NoError(t, err)

	assert.Error(t, product.Publish(), "cannot publish without variants")

	_, err = product.AddVariant("HEL-RED-M", valueobject.NewMoneyFromFloat(100), 5)
	require.NoError(t, err)
	require.NoError(t, product.Publish())
	assert.Equal(t, ProductStatusPublished, product.Status)

	product.Disable()
	assert.Equal(t, ProductStatusDisabled, product.Status)
}

func TestProductVariant_Stock(t *testing.T) {
	product, err := NewProduct("Trail Helmet", "trail-helmet")
	require.NoError(t, err)
	variant, err := product.AddVariant("HEL-RED-M", valueobject.NewMoneyFromFloat(100), 5)
	require.NoError(t, err)

	assert.True(t, variant.InStock(5))
	assert.False(t, variant.InStock(6))

	require.NoError(t, variant.DecrementStock(3))
	assert.Equal(t, 2, variant.StockNumber)

	// never below zero
	err = variant.DecrementStock(3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 2, variant.StockNumber)

	require.NoError(t, variant.IncrementStock(3))
	assert.Equal(t, 5, variant.StockNumber)

	assert.Error(t, variant.DecrementStock(0))
	assert.Error(t, variant.IncrementStock(-1))
}
