package models

import (
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	SoftDeleteModel
	TrackingCode     string            `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status           order.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsComplete       bool              `gorm:"not null;default:false"`
	CouponCode       string            `gorm:"type:varchar(50)"`
	Subtotal         decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	DiscountedTotal  decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	ShippingMethodID uuid.UUID         `gorm:"type:uuid;not null"`
	ShippingCost     decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	HandlingFee      decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	Total            decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	AddressID        uuid.UUID         `gorm:"type:uuid;not null"`
	PaymentDate      *time.Time
	PaymentRef       string           `gorm:"type:varchar(100)"`
	IsReserved       bool             `gorm:"not null;default:false;index:idx_orders_reservation"`
	ReservedUntil    *time.Time       `gorm:"index:idx_orders_reservation"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		TrackingCode:     m.TrackingCode,
		CustomerID:       m.CustomerID,
		Status:           m.Status,
		IsComplete:       m.IsComplete,
		CouponCode:       m.CouponCode,
		Subtotal:         m.Subtotal,
		DiscountedTotal:  m.DiscountedTotal,
		ShippingMethodID: m.ShippingMethodID,
		ShippingCost:     m.ShippingCost,
		HandlingFee:      m.HandlingFee,
		Total:            m.Total,
		AddressID:        m.AddressID,
		PaymentDate:      m.PaymentDate,
		PaymentRef:       m.PaymentRef,
		IsReserved:       m.IsReserved,
		ReservedUntil:    m.ReservedUntil,
		Items:            make([]order.OrderItem, 0, len(m.Items)),
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	o.SoftDeletable = m.ToDomainSoftDeletable()
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.FromDomainSoftDeletable(o.SoftDeletable)
	m.TrackingCode = o.TrackingCode
	m.CustomerID = o.CustomerID
	m.Status = o.Status
	m.IsComplete = o.IsComplete
	m.CouponCode = o.CouponCode
	m.Subtotal = o.Subtotal
	m.DiscountedTotal = o.DiscountedTotal
	m.ShippingMethodID = o.ShippingMethodID
	m.ShippingCost = o.ShippingCost
	m.HandlingFee = o.HandlingFee
	m.Total = o.Total
	m.AddressID = o.AddressID
	m.PaymentDate = o.PaymentDate
	m.PaymentRef = o.PaymentRef
	m.IsReserved = o.IsReserved
	m.ReservedUntil = o.ReservedUntil
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		var im OrderItemModel
		im.FromDomain(&o.Items[i])
		m.Items = append(m.Items, im)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for OrderItem.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(64);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Quantity  int             `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		VariantID: m.VariantID,
		SKU:       m.SKU,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem.
func (m *OrderItemModel) FromDomain(i *order.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.VariantID = i.VariantID
	m.SKU = i.SKU
	m.UnitPrice = i.UnitPrice
	m.Quantity = i.Quantity
	m.CreatedAt = i.CreatedAt
}

// ShippingMethodModel is the persistence model for ShippingMethod.
type ShippingMethodModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShippingMethodModel) TableName() string {
	return "shipping_methods"
}

// ToDomain converts the persistence model to a domain ShippingMethod.
func (m *ShippingMethodModel) ToDomain() *order.ShippingMethod {
	return &order.ShippingMethod{
		ID:    m.ID,
		Name:  m.Name,
		Price: m.Price,
	}
}
