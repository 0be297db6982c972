package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/payment"
	"github.com/gearshop/backend/internal/domain/promotion"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*order.Order
	updateErr error
	expired   []*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[uuid.UUID]*order.Order)}
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByTrackingCode(_ context.Context, code string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.TrackingCode == code {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*order.Order
	for _, o := range r.byID {
		if o.CustomerID == customerID {
			items = append(items, o)
		}
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*order.Order
	status, hasStatus := filter.Filters["status"]
	for _, o := range r.byID {
		if hasStatus && string(o.Status) != status {
			continue
		}
		items = append(items, o)
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *fakeOrderRepo) FindExpiredReservations(_ context.Context, _ time.Time, limit int) ([]*order.Order, error) {
	if len(r.expired) > limit {
		return r.expired[:limit], nil
	}
	return r.expired, nil
}

type fakeStock struct {
	reserveErr error
	releaseErr error
	reserved   []uuid.UUID
	released   []uuid.UUID
}

func (s *fakeStock) Reserve(_ context.Context, o *order.Order, window time.Duration) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	o.MarkReserved(time.Now().Add(window))
	s.reserved = append(s.reserved, o.ID)
	return nil
}

func (s *fakeStock) Release(_ context.Context, o *order.Order) error {
	if s.releaseErr != nil {
		return s.releaseErr
	}
	if !o.IsReserved || o.Status == order.StatusPaid {
		return nil
	}
	o.ClearReservation()
	s.released = append(s.released, o.ID)
	return nil
}

type fakeGateway struct {
	requestErr error
	verifyErr  error
	session    payment.PaymentSession
	result     payment.VerificationResult
	requests   []payment.PaymentRequest
	verified   []string
}

func (g *fakeGateway) RequestPayment(_ context.Context, req payment.PaymentRequest) (*payment.PaymentSession, error) {
	g.requests = append(g.requests, req)
	if g.requestErr != nil {
		return nil, g.requestErr
	}
	session := g.session
	return &session, nil
}

func (g *fakeGateway) VerifyPayment(_ context.Context, authority string, _ decimal.Decimal) (*payment.VerificationResult, error) {
	g.verified = append(g.verified, authority)
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	result := g.result
	return &result, nil
}

type fakeCouponRepo struct {
	byCode       map[string]*promotion.Coupon
	consumeErr   error
	consumed     []string
	releasedUses []string
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{byCode: make(map[string]*promotion.Coupon)}
}

func (r *fakeCouponRepo) Save(_ context.Context, c *promotion.Coupon) error {
	r.byCode[c.Code] = c
	return nil
}

func (r *fakeCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	for _, c := range r.byCode {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*promotion.Coupon, error) {
	c, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCouponRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[*promotion.Coupon], error) {
	var items []*promotion.Coupon
	for _, c := range r.byCode {
		items = append(items, c)
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeCouponRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *fakeCouponRepo) ConsumeUse(_ context.Context, code string, _ time.Time) error {
	if r.consumeErr != nil {
		return r.consumeErr
	}
	r.consumed = append(r.consumed, code)
	if c, ok := r.byCode[code]; ok {
		c.NumberOfUses++
	}
	return nil
}

func (r *fakeCouponRepo) ReleaseUse(_ context.Context, code string) error {
	r.releasedUses = append(r.releasedUses, code)
	if c, ok := r.byCode[code]; ok && c.NumberOfUses > 0 {
		c.NumberOfUses--
	}
	return nil
}

type fakeEventBus struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (b *fakeEventBus) Publish(_ context.Context, event shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *fakeEventBus) Subscribe(_ shared.EventHandler) {}

func (b *fakeEventBus) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.events))
	for _, e := range b.events {
		types = append(types, e.EventType())
	}
	return types
}

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

// pricing fakes

type fakeCatalogReader struct {
	variants map[uuid.UUID]*catalog.ProductVariant
}

func (r *fakeCatalogReader) FindVariant(_ context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

type fakeDiscountResolver struct{}

func (r *fakeDiscountResolver) FindValidForVariant(_ context.Context, _ uuid.UUID, _ time.Time) ([]catalog.ProductDiscount, error) {
	return nil, nil
}

type fakeShippingResolver struct {
	method *order.ShippingMethod
}

func (r *fakeShippingResolver) FindShippingMethod(_ context.Context, id uuid.UUID) (*order.ShippingMethod, error) {
	if r.method == nil || r.method.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.method, nil
}
