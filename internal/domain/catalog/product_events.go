package catalog

import (
	"github.com/gearshop/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated  = "catalog.product.created"
	EventTypeProductDisabled = "catalog.product.disabled"
)

// ProductCreatedEvent is emitted when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		Name:            p.Name,
		Slug:            p.Slug,
	}
}

// ProductDisabledEvent is emitted when a product is withdrawn from sale
type ProductDisabledEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductDisabledEvent creates a new ProductDisabledEvent
func NewProductDisabledEvent(p *Product) *ProductDisabledEvent {
	return &ProductDisabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDisabled, "Product", p.ID),
		Name:            p.Name,
	}
}
