package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates a new order with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing order with optimistic locking.
// The version check makes concurrent writers fail instead of silently
// overwriting each other.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Select("*").Omit("id", "created_at", "Items").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrackingCode finds an order by its tracking code
func (r *GormOrderRepository) FindByTrackingCode(ctx context.Context, code string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Preload("Items").
		First(&model, "tracking_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds orders belonging to a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, func(db *gorm.DB) *gorm.DB {
		return db.Where("customer_id = ?", customerID)
	})
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, func(db *gorm.DB) *gorm.DB {
		if status, ok := filter.Filters["status"]; ok {
			db = db.Where("status = ?", status)
		}
		return db
	})
}

func (r *GormOrderRepository) findPage(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (*shared.Paginated[*order.Order], error) {
	base := scope(r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(notDeleted))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var list []models.OrderModel
	if err := applyFilter(base, filter).Preload("Items").Find(&list).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(list))
	for i := range list {
		orders = append(orders, list[i].ToDomain())
	}
	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindExpiredReservations returns reserved, unpaid orders whose window
// lapsed before the given instant
func (r *GormOrderRepository) FindExpiredReservations(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	var list []models.OrderModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		Where("is_reserved = ? AND reserved_until < ? AND status = ?",
			true, before, order.StatusPending).
		Order("reserved_until ASC").
		Limit(limit).
		Preload("Items").
		Find(&list).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(list))
	for i := range list {
		orders = append(orders, list[i].ToDomain())
	}
	return orders, nil
}

// Delete soft deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
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

// GormShippingMethodRepository implements order.ShippingMethodRepository
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GormShippingMethodRepository
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// FindByID finds an active shipping method by its ID
func (r *GormShippingMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ShippingMethod, error) {
	var model models.ShippingMethodModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all active shipping methods
func (r *GormShippingMethodRepository) FindAll(ctx context.Context) ([]*order.ShippingMethod, error) {
	var list []models.ShippingMethodModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	methods := make([]*order.ShippingMethod, 0, len(list))
	for i := range list {
		methods = append(methods, list[i].ToDomain())
	}
	return methods, nil
}
