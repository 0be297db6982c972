package persistence

import (
	"context"
	"errors"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVariantRepository implements catalog.VariantRepository using GORM.
// It never touches stock_number; that column belongs to the stock
// reservation scope.
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var model models.ProductVariantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple variants at once
func (r *GormVariantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductVariant, error) {
	var list []models.ProductVariantModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	variants := make([]catalog.ProductVariant, 0, len(list))
	for i := range list {
		variants = append(variants, *list[i].ToDomain())
	}
	return variants, nil
}

// Save creates or updates a variant. Stock is saved as-is only for new
// rows; updates of existing rows preserve the stored stock_number.
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	var model models.ProductVariantModel
	model.FromDomain(variant)

	var existing models.ProductVariantModel
	err := r.db.WithContext(ctx).First(&existing, "id = ?", model.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&model).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&existing).
		Omit("stock_number").
		Updates(map[string]any{
			"sku":        model.SKU,
			"price":      model.Price,
			"is_active":  model.IsActive,
			"updated_at": model.UpdatedAt,
		}).Error
}
