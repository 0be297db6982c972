package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCoupon(t *testing.T, repo *GormCouponRepository, code string, maximumUse int) *promotion.Coupon {
	t.Helper()

	now := time.Now()
	coupon, err := promotion.NewCoupon(code, promotion.CouponTypePercent, decimal.NewFromInt(20),
		now.Add(-time.Hour), now.Add(time.Hour), maximumUse)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), coupon))
	return coupon
}

func TestGormCouponRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	coupon := seedCoupon(t, repo, "SAVE20", 100)

	byID, err := repo.FindByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", byID.Code)
	assert.Equal(t, promotion.CouponTypePercent, byID.Type)
	assert.True(t, byID.Amount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 100, byID.MaximumUse)
	assert.Equal(t, 0, byID.NumberOfUses)

	// Lookup normalizes the code the same way the aggregate does.
	byCode, err := repo.FindByCode(ctx, "  save20 ")
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, byCode.ID)

	_, err = repo.FindByCode(ctx, "MISSING")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormCouponRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	coupon := seedCoupon(t, repo, "SAVE20", 100)
	require.NoError(t, repo.Delete(ctx, coupon.ID))

	_, err := repo.FindByID(ctx, coupon.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormCouponRepository_ConsumeUse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	seedCoupon(t, repo, "SAVE20", 2)
	now := time.Now()

	require.NoError(t, repo.ConsumeUse(ctx, "SAVE20", now))
	require.NoError(t, repo.ConsumeUse(ctx, "save20", now))

	// Third consume hits the ceiling in the same statement that
	// checked it, so the counter can never pass maximum_use.
	err := repo.ConsumeUse(ctx, "SAVE20", now)
	assert.True(t, errors.Is(err, shared.ErrCouponExhausted))

	coupon, err := repo.FindByCode(ctx, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 2, coupon.NumberOfUses)
}

func TestGormCouponRepository_ConsumeUse_OutsideWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	seedCoupon(t, repo, "SAVE20", 10)

	err := repo.ConsumeUse(ctx, "SAVE20", time.Now().Add(48*time.Hour))
	assert.True(t, errors.Is(err, shared.ErrCouponInvalid))

	err = repo.ConsumeUse(ctx, "UNKNOWN", time.Now())
	assert.True(t, errors.Is(err, shared.ErrCouponInvalid))
}

func TestGormCouponRepository_ReleaseUse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	seedCoupon(t, repo, "SAVE20", 2)
	now := time.Now()

	require.NoError(t, repo.ConsumeUse(ctx, "SAVE20", now))
	require.NoError(t, repo.ReleaseUse(ctx, "SAVE20"))

	coupon, err := repo.FindByCode(ctx, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 0, coupon.NumberOfUses)

	// The counter never goes below zero.
	require.NoError(t, repo.ReleaseUse(ctx, "SAVE20"))
	coupon, err = repo.FindByCode(ctx, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 0, coupon.NumberOfUses)
}

func TestGormCouponRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCouponRepository(db)

	seedCoupon(t, repo, "SAVE10", 10)
	seedCoupon(t, repo, "SAVE20", 10)
	deleted := seedCoupon(t, repo, "SAVE30", 10)
	require.NoError(t, repo.Delete(ctx, deleted.ID))

	page, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
}
