package catalog

import (
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusDisabled  ProductStatus = "disabled"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusDisabled:
		return true
	}
	return false
}

// Product represents a sellable product aggregate root.
// Purchasable configurations live in its variants; the order side only
// ever reads variants.
type Product struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name        string
	Slug        string
	Description string
	CategoryID  *uuid.UUID
	Status      ProductStatus
	Variants    []ProductVariant
}

// NewProduct creates a new draft product
func NewProduct(name, slug string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		Status:            ProductStatusDraft,
		Variants:          make([]ProductVariant, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// AddVariant adds a new purchasable variant to the product
func (p *Product) AddVariant(sku string, price valueobject.Money, stock int) (*ProductVariant, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Variant SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Variant stock cannot be negative")
	}
	for _, v := range p.Variants {
		if v.SKU == sku {
			return nil, shared.NewDomainError("DUPLICATE_SKU", "Variant SKU already exists on product")
		}
	}

	now := time.Now()
	variant := ProductVariant{
		ID:          uuid.New(),
		ProductID:   p.ID,
		SKU:         strings.ToUpper(sku),
		Price:       price.Round(valueobject.MoneyScale).Amount(),
		StockNumber: stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Variants = append(p.Variants, variant)
	p.UpdatedAt = now

	return &p.Variants[len(p.Variants)-1], nil
}

// Publish makes the product visible in the catalog
func (p *Product) Publish() error {
	if len(p.Variants) == 0 {
		return shared.NewDomainError("NO_VARIANTS", "Cannot publish a product without variants")
	}
	p.Status = ProductStatusPublished
	p.UpdatedAt = time.Now()
	return nil
}

// Disable removes the product from sale without deleting it
func (p *Product) Disable() {
	p.Status = ProductStatusDisabled
	p.UpdatedAt = time.Now()
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
}

// ProductVariant is the purchasable SKU-level configuration of a product.
// StockNumber is the single shared mutable resource of the order flow and
// is only ever mutated by the stock reservation manager.
type ProductVariant struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	SKU         string
	Price       decimal.Decimal
	StockNumber int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceMoney returns the variant price as a Money value object
func (v *ProductVariant) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyFromDecimal(v.Price)
}

// InStock reports whether the variant can cover the requested quantity
func (v *ProductVariant) InStock(quantity int) bool {
	return v.StockNumber >= quantity
}

// DecrementStock reduces available stock, refusing to go below zero
func (v *ProductVariant) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if v.StockNumber < quantity {
		return shared.ErrInsufficientStock
	}
	v.StockNumber -= quantity
	v.UpdatedAt = time.Now()
	return nil
}

// IncrementStock returns previously reserved stock to the pool
func (v *ProductVariant) IncrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	v.StockNumber += quantity
	v.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the variant price
func (v *ProductVariant) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	v.Price = price.Round(valueobject.MoneyScale).Amount()
	v.UpdatedAt = time.Now()
	return nil
}
