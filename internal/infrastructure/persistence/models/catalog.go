package models

import (
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	SoftDeleteModel
	Name        string                `gorm:"type:varchar(200);not null"`
	Slug        string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string                `gorm:"type:text"`
	CategoryID  *uuid.UUID            `gorm:"type:uuid;index"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Variants    []ProductVariantModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		Status:      m.Status,
		Variants:    make([]catalog.ProductVariant, 0, len(m.Variants)),
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	p.SoftDeletable = m.ToDomainSoftDeletable()
	for i := range m.Variants {
		p.Variants = append(p.Variants, *m.Variants[i].ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.FromDomainSoftDeletable(p.SoftDeletable)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.Status = p.Status
	m.Variants = make([]ProductVariantModel, 0, len(p.Variants))
	for i := range p.Variants {
		var vm ProductVariantModel
		vm.FromDomain(&p.Variants[i])
		m.Variants = append(m.Variants, vm)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductVariantModel is the persistence model for ProductVariant.
// StockNumber carries a non-negative check mirrored by the migration.
type ProductVariantModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU         string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Price       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	StockNumber int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain ProductVariant.
func (m *ProductVariantModel) ToDomain() *catalog.ProductVariant {
	return &catalog.ProductVariant{
		ID:          m.ID,
		ProductID:   m.ProductID,
		SKU:         m.SKU,
		Price:       m.Price,
		StockNumber: m.StockNumber,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductVariant.
func (m *ProductVariantModel) FromDomain(v *catalog.ProductVariant) {
	m.ID = v.ID
	m.ProductID = v.ProductID
	m.SKU = v.SKU
	m.Price = v.Price
	m.StockNumber = v.StockNumber
	m.IsActive = v.IsActive
	m.CreatedAt = v.CreatedAt
	m.UpdatedAt = v.UpdatedAt
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	AggregateModel
	SoftDeleteModel
	Slug      string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string                 `gorm:"type:varchar(100);not null"`
	ParentID  *uuid.UUID             `gorm:"type:uuid;index"`
	Path      string                 `gorm:"type:varchar(500);not null;index"`
	Level     int                    `gorm:"not null;default:0"`
	SortOrder int                    `gorm:"not null;default:0"`
	Status    catalog.CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	c := &catalog.Category{
		Slug:      m.Slug,
		Name:      m.Name,
		ParentID:  m.ParentID,
		Path:      m.Path,
		Level:     m.Level,
		SortOrder: m.SortOrder,
		Status:    m.Status,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	c.SoftDeletable = m.ToDomainSoftDeletable()
	return c
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.FromDomainSoftDeletable(c.SoftDeletable)
	m.Slug = c.Slug
	m.Name = c.Name
	m.ParentID = c.ParentID
	m.Path = c.Path
	m.Level = c.Level
	m.SortOrder = c.SortOrder
	m.Status = c.Status
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductDiscountModel is the persistence model for ProductDiscount.
type ProductDiscountModel struct {
	BaseModel
	SoftDeleteModel
	VariantID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Type      catalog.DiscountType `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal      `gorm:"type:decimal(18,3);not null"`
	StartDate time.Time            `gorm:"not null;index"`
	EndDate   time.Time            `gorm:"not null;index"`
	IsActive  bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductDiscountModel) TableName() string {
	return "product_discounts"
}

// ToDomain converts the persistence model to a domain ProductDiscount.
func (m *ProductDiscountModel) ToDomain() *catalog.ProductDiscount {
	return &catalog.ProductDiscount{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.ToDomainSoftDeletable(),
		VariantID:     m.VariantID,
		Type:          m.Type,
		Amount:        m.Amount,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		IsActive:      m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain ProductDiscount.
func (m *ProductDiscountModel) FromDomain(d *catalog.ProductDiscount) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.FromDomainSoftDeletable(d.SoftDeletable)
	m.VariantID = d.VariantID
	m.Type = d.Type
	m.Amount = d.Amount
	m.StartDate = d.StartDate
	m.EndDate = d.EndDate
	m.IsActive = d.IsActive
}

// ProductDiscountModelFromDomain creates a new persistence model from a domain ProductDiscount.
func ProductDiscountModelFromDomain(d *catalog.ProductDiscount) *ProductDiscountModel {
	m := &ProductDiscountModel{}
	m.FromDomain(d)
	return m
}
