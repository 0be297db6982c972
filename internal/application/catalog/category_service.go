package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category tree use cases
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory creates a root category, or a child when ParentID is set
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categories.FindBySlug(ctx, strings.ToLower(req.Slug))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SLUG", "A category with this slug already exists")
	}

	var category *catalog.Category
	if req.ParentID == nil {
		category, err = catalog.NewCategory(req.Slug, req.Name)
	} else {
		var parent *catalog.Category
		parent, err = s.categories.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		category, err = catalog.NewChildCategory(req.Slug, req.Name, parent)
	}
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// MoveCategory re-parents a category and rewrites its subtree paths
func (s *CategoryService) MoveCategory(ctx context.Context, categoryID uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	newParent, err := s.categories.FindByID(ctx, req.NewParentID)
	if err != nil {
		return nil, err
	}

	oldPath, err := category.MoveTo(newParent)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Move(ctx, category, oldPath); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetCategoryBySlug retrieves a category by its slug
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categories.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListRoots retrieves all root categories
func (s *CategoryService) ListRoots(ctx context.Context) ([]CategoryResponse, error) {
	roots, err := s.categories.FindRoots(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(roots), nil
}

// ListChildren retrieves the direct children of a category
func (s *CategoryService) ListChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	children, err := s.categories.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// ListSubtree retrieves a category and all of its descendants
func (s *CategoryService) ListSubtree(ctx context.Context, categoryID uuid.UUID) ([]CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	subtree, err := s.categories.FindSubtree(ctx, category.Path)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(subtree), nil
}

// DeleteCategory soft-deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return s.categories.Delete(ctx, categoryID)
}
