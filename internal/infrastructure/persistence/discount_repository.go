package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiscountRepository implements catalog.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by its ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductDiscount, error) {
	var model models.ProductDiscountModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindValidForVariant returns the discounts applicable to a variant at
// the given instant, ordered by start date then id so sequential
// application is deterministic.
func (r *GormDiscountRepository) FindValidForVariant(ctx context.Context, variantID uuid.UUID, at time.Time) ([]catalog.ProductDiscount, error) {
	var list []models.ProductDiscountModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Where("variant_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			variantID, true, at, at).
		Order("start_date ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	discounts := make([]catalog.ProductDiscount, 0, len(list))
	for i := range list {
		discounts = append(discounts, *list[i].ToDomain())
	}
	return discounts, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.ProductDiscount) error {
	model := models.ProductDiscountModelFromDomain(discount)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a discount
func (r *GormDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.ProductDiscountModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
