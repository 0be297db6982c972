package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCouponRepository implements promotion.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	model := models.CouponModelFromDomain(coupon)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a coupon by its normalized code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*promotion.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).Scopes(notDeleted).
		First(&model, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns coupons matching the filter
func (r *GormCouponRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*promotion.Coupon], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.CouponModel{}).Scopes(notDeleted)
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var list []models.CouponModel
	if err := applyFilter(base, filter).Find(&list).Error; err != nil {
		return nil, err
	}

	coupons := make([]*promotion.Coupon, 0, len(list))
	for i := range list {
		coupons = append(coupons, list[i].ToDomain())
	}
	page := shared.NewPaginated(coupons, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete soft deletes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.CouponModel{}).
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

// ConsumeUse increments the usage counter with the ceiling check in the
// same UPDATE statement. Two concurrent finalizations both racing for
// the last use cannot both succeed: the second one matches zero rows.
func (r *GormCouponRepository) ConsumeUse(ctx context.Context, code string, at time.Time) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	result := r.db.WithContext(ctx).Model(&models.CouponModel{}).
		Where("code = ? AND is_active = ? AND is_deleted = ?", code, true, false).
		Where("valid_from <= ? AND valid_to >= ?", at, at).
		Where("number_of_uses < maximum_use").
		UpdateColumn("number_of_uses", gorm.Expr("number_of_uses + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows: distinguish exhausted from invalid for the caller.
	coupon, err := r.FindByCode(ctx, code)
	if err != nil {
		return shared.ErrCouponInvalid
	}
	if coupon.Exhausted() {
		return shared.ErrCouponExhausted
	}
	return shared.ErrCouponInvalid
}

// ReleaseUse decrements the usage counter, flooring at zero
func (r *GormCouponRepository) ReleaseUse(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return r.db.WithContext(ctx).Model(&models.CouponModel{}).
		Where("code = ? AND number_of_uses > 0", code).
		UpdateColumn("number_of_uses", gorm.Expr("number_of_uses - 1")).Error
}
