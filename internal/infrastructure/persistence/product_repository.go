package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// notDeleted scopes a query to rows that are not soft deleted
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Preload("Variants").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Preload("Variants").
		First(&model, "slug = ?", strings.ToLower(slug)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var list []models.ProductModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(notDeleted), filter)

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if err := query.Preload("Variants").Find(&list).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(list))
	for i := range list {
		products = append(products, *list[i].ToDomain())
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(notDeleted)
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product and its variants
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Variants {
			if err := tx.Save(&model.Variants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
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

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		if sortColumnAllowed(filter.OrderBy) {
			db = db.Order(filter.OrderBy + " " + dir)
		}
	}
	return db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
}

// sortColumnAllowed whitelists order-by columns so filter input can
// never inject SQL through the ORDER BY clause.
func sortColumnAllowed(column string) bool {
	switch column {
	case "created_at", "updated_at", "name", "slug", "status", "sort_order", "price", "code", "tracking_code", "total":
		return true
	}
	return false
}
