package catalog

import (
	"context"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository persists Product aggregates
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VariantRepository provides read access to product variants.
// Stock mutation is deliberately absent here: it belongs to the stock
// reservation manager, which operates under row locks in a transaction.
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductVariant, error)
	Save(ctx context.Context, variant *ProductVariant) error
}

// DiscountRepository persists product discounts and resolves the ones
// valid at a point in time. Implementations must return valid discounts
// in a deterministic order (start_date, then id).
type DiscountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDiscount, error)
	FindValidForVariant(ctx context.Context, variantID uuid.UUID, at time.Time) ([]ProductDiscount, error)
	Save(ctx context.Context, discount *ProductDiscount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists the category tree
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindRoots(ctx context.Context) ([]Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	FindSubtree(ctx context.Context, path string) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	// Move persists a re-parented category and rewrites the paths of its
	// entire subtree in one transaction.
	Move(ctx context.Context, category *Category, oldPath string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
