package catalog

import (
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Slug        string     `json:"slug" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// AddVariantRequest represents a request to add a variant to a product
type AddVariantRequest struct {
	SKU   string          `json:"sku" binding:"required,min=1,max=64"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int             `json:"stock" binding:"min=0"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	StockNumber int             `json:"stock_number"`
	IsActive    bool            `json:"is_active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	CategoryID  *uuid.UUID        `json:"category_id"`
	Status      string            `json:"status"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Path      string     `json:"path"`
	Level     int        `json:"level"`
	SortOrder int        `json:"sort_order"`
	Status    string     `json:"status"`
}

// CreateCategoryRequest represents a request to create a category.
// ParentID absent means a new root.
type CreateCategoryRequest struct {
	Slug     string     `json:"slug" binding:"required,min=1,max=50"`
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// MoveCategoryRequest represents a request to re-parent a category
type MoveCategoryRequest struct {
	NewParentID uuid.UUID `json:"new_parent_id" binding:"required"`
}

// CreateDiscountRequest represents a request to create a variant discount
type CreateDiscountRequest struct {
	VariantID uuid.UUID       `json:"variant_id" binding:"required"`
	Type      string          `json:"type" binding:"required,oneof=percent amount"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
}

// DiscountResponse represents a discount in API responses
type DiscountResponse struct {
	ID        uuid.UUID       `json:"id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	IsActive  bool            `json:"is_active"`
}

// ToVariantResponse converts a domain ProductVariant to VariantResponse
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:          v.ID,
		SKU:         v.SKU,
		Price:       v.Price,
		StockNumber: v.StockNumber,
		IsActive:    v.IsActive,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, ToVariantResponse(&p.Variants[i]))
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Status:      string(p.Status),
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		ParentID:  c.ParentID,
		Path:      c.Path,
		Level:     c.Level,
		SortOrder: c.SortOrder,
		Status:    string(c.Status),
	}
}

// ToCategoryResponses converts a slice of domain categories
func ToCategoryResponses(list []catalog.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(list))
	for i := range list {
		result = append(result, ToCategoryResponse(&list[i]))
	}
	return result
}

// ToDiscountResponse converts a domain ProductDiscount to DiscountResponse
func ToDiscountResponse(d *catalog.ProductDiscount) DiscountResponse {
	return DiscountResponse{
		ID:        d.ID,
		VariantID: d.VariantID,
		Type:      string(d.Type),
		Amount:    d.Amount,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		IsActive:  d.IsActive,
	}
}
