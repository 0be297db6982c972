package persistence

import (
	"context"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/order"
	"github.com/google/uuid"
)

// PricingCatalogReader adapts the variant repository to the read model
// the pricing engine consumes
type PricingCatalogReader struct {
	variants catalog.VariantRepository
}

// NewPricingCatalogReader creates a catalog reader backed by the given
// variant repository
func NewPricingCatalogReader(variants catalog.VariantRepository) *PricingCatalogReader {
	return &PricingCatalogReader{variants: variants}
}

// FindVariant resolves a variant by ID
func (r *PricingCatalogReader) FindVariant(ctx context.Context, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	return r.variants.FindByID(ctx, variantID)
}

// PricingShippingResolver adapts the shipping method repository to the
// pricing engine's resolver interface
type PricingShippingResolver struct {
	methods order.ShippingMethodRepository
}

// NewPricingShippingResolver creates a shipping resolver backed by the
// given shipping method repository
func NewPricingShippingResolver(methods order.ShippingMethodRepository) *PricingShippingResolver {
	return &PricingShippingResolver{methods: methods}
}

// FindShippingMethod resolves a shipping method by ID
func (r *PricingShippingResolver) FindShippingMethod(ctx context.Context, id uuid.UUID) (*order.ShippingMethod, error) {
	return r.methods.FindByID(ctx, id)
}

var (
	_ order.CatalogReader    = (*PricingCatalogReader)(nil)
	_ order.ShippingResolver = (*PricingShippingResolver)(nil)
)
