package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxCategoryDepth is the maximum depth of the category hierarchy
const MaxCategoryDepth = 5

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category represents a product category.
// The tree is stored as a materialized path so subtree queries are a
// single prefix match.
type Category struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Slug      string
	Name      string
	ParentID  *uuid.UUID
	Path      string
	Level     int
	SortOrder int
	Status    CategoryStatus
}

// NewCategory creates a new root category
func NewCategory(slug, name string) (*Category, error) {
	if err := validateCategorySlug(slug); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		Status:            CategoryStatusActive,
		Level:             0,
	}
	// Root category path is just the ID
	category.Path = category.ID.String()

	return category, nil
}

// NewChildCategory creates a new child category under a parent
func NewChildCategory(slug, name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	if parent.Level >= MaxCategoryDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}
	if err := validateCategorySlug(slug); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		ParentID:          &parent.ID,
		Level:             parent.Level + 1,
		Status:            CategoryStatusActive,
	}
	// Child category path is parent path + separator + child ID
	category.Path = parent.Path + "/" + category.ID.String()

	return category, nil
}

// MoveTo re-parents the category. The repository is responsible for
// rewriting paths of the subtree using the returned old path prefix.
func (c *Category) MoveTo(newParent *Category) (oldPath string, err error) {
	if newParent == nil {
		return "", shared.NewDomainError("INVALID_PARENT", "New parent category is required")
	}
	if newParent.ID == c.ID {
		return "", shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	if newParent.IsDescendantOf(c) {
		return "", shared.NewDomainError("INVALID_PARENT", "Cannot move a category under its own descendant")
	}
	if newParent.Level >= MaxCategoryDepth-1 {
		return "", shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	oldPath = c.Path
	c.ParentID = &newParent.ID
	c.Level = newParent.Level + 1
	c.Path = newParent.Path + "/" + c.ID.String()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return oldPath, nil
}

// IsDescendantOf reports whether the category sits inside the other's subtree
func (c *Category) IsDescendantOf(other *Category) bool {
	return strings.HasPrefix(c.Path, other.Path+"/")
}

// Update updates the category's basic information
func (c *Category) Update(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate hides the category from the storefront
func (c *Category) Deactivate() {
	c.Status = CategoryStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateCategorySlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	if len(slug) > 50 {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot exceed 50 characters")
	}
	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
