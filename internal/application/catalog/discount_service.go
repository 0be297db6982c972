package catalog

import (
	"context"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// DiscountService handles variant discount use cases
type DiscountService struct {
	discounts catalog.DiscountRepository
	variants  catalog.VariantRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discounts catalog.DiscountRepository, variants catalog.VariantRepository) *DiscountService {
	return &DiscountService{
		discounts: discounts,
		variants:  variants,
	}
}

// CreateDiscount creates a time-bounded discount for a variant
func (s *DiscountService) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	if _, err := s.variants.FindByID(ctx, req.VariantID); err != nil {
		return nil, err
	}

	discount, err := catalog.NewProductDiscount(req.VariantID, catalog.DiscountType(req.Type), req.Amount, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.discounts.Save(ctx, discount); err != nil {
		return nil, err
	}

	response := ToDiscountResponse(discount)
	return &response, nil
}

// ListValidDiscounts retrieves the discounts valid for a variant right now
func (s *DiscountService) ListValidDiscounts(ctx context.Context, variantID uuid.UUID) ([]DiscountResponse, error) {
	discounts, err := s.discounts.FindValidForVariant(ctx, variantID, time.Now())
	if err != nil {
		return nil, err
	}
	result := make([]DiscountResponse, 0, len(discounts))
	for i := range discounts {
		result = append(result, ToDiscountResponse(&discounts[i]))
	}
	return result, nil
}

// DeactivateDiscount withdraws a discount before its window closes
func (s *DiscountService) DeactivateDiscount(ctx context.Context, discountID uuid.UUID) error {
	discount, err := s.discounts.FindByID(ctx, discountID)
	if err != nil {
		return err
	}
	discount.Deactivate()
	return s.discounts.Save(ctx, discount)
}

// DeleteDiscount soft-deletes a discount
func (s *DiscountService) DeleteDiscount(ctx context.Context, discountID uuid.UUID) error {
	return s.discounts.Delete(ctx, discountID)
}
