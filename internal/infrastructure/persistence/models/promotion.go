package models

import (
	"time"

	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// CouponModel is the persistence model for the Coupon domain entity.
// NumberOfUses is only ever advanced through the single-statement
// increment in the coupon repository, never by writing this struct.
type CouponModel struct {
	AggregateModel
	SoftDeleteModel
	Code         string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type         promotion.CouponType `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,3);not null"`
	ValidFrom    time.Time            `gorm:"not null"`
	ValidTo      time.Time            `gorm:"not null"`
	MaximumUse   int                  `gorm:"not null"`
	NumberOfUses int                  `gorm:"not null;default:0"`
	IsActive     bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon entity.
func (m *CouponModel) ToDomain() *promotion.Coupon {
	c := &promotion.Coupon{
		Code:         m.Code,
		Type:         m.Type,
		Amount:       m.Amount,
		ValidFrom:    m.ValidFrom,
		ValidTo:      m.ValidTo,
		MaximumUse:   m.MaximumUse,
		NumberOfUses: m.NumberOfUses,
		IsActive:     m.IsActive,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	c.SoftDeletable = m.ToDomainSoftDeletable()
	return c
}

// FromDomain populates the persistence model from a domain Coupon entity.
func (m *CouponModel) FromDomain(c *promotion.Coupon) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.FromDomainSoftDeletable(c.SoftDeletable)
	m.Code = c.Code
	m.Type = c.Type
	m.Amount = c.Amount
	m.ValidFrom = c.ValidFrom
	m.ValidTo = c.ValidTo
	m.MaximumUse = c.MaximumUse
	m.NumberOfUses = c.NumberOfUses
	m.IsActive = c.IsActive
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon entity.
func CouponModelFromDomain(c *promotion.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomain(c)
	return m
}
