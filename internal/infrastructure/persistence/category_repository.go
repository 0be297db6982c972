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

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a category by its slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		First(&model, "slug = ?", strings.ToLower(slug)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRoots finds all root categories
func (r *GormCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	var list []models.CategoryModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainCategories(list), nil
}

// FindChildren finds all direct children of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	var list []models.CategoryModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainCategories(list), nil
}

// FindSubtree finds all descendants under a materialized path prefix
func (r *GormCategoryRepository) FindSubtree(ctx context.Context, path string) ([]catalog.Category, error) {
	var list []models.CategoryModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Where("path LIKE ?", path+"/%").
		Order("level ASC, sort_order ASC, name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainCategories(list), nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// Move persists a re-parented category and rewrites the paths of its
// subtree in one transaction. The descendant levels shift by the same
// delta as the moved node.
func (r *GormCategoryRepository) Move(ctx context.Context, category *catalog.Category, oldPath string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CategoryModelFromDomain(category)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		var descendants []models.CategoryModel
		if err := tx.Where("path LIKE ?", oldPath+"/%").Find(&descendants).Error; err != nil {
			return err
		}

		oldDepth := strings.Count(oldPath, "/")
		newDepth := strings.Count(category.Path, "/")
		levelDelta := newDepth - oldDepth

		for i := range descendants {
			newPath := category.Path + strings.TrimPrefix(descendants[i].Path, oldPath)
			if err := tx.Model(&descendants[i]).
				Updates(map[string]any{
					"path":  newPath,
					"level": descendants[i].Level + levelDelta,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
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

func toDomainCategories(list []models.CategoryModel) []catalog.Category {
	categories := make([]catalog.Category, 0, len(list))
	for i := range list {
		categories = append(categories, *list[i].ToDomain())
	}
	return categories
}
