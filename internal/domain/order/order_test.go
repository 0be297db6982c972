package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote(t *testing.T) *Quote {
	t.Helper()
	unit := valueobject.NewMoneyFromFloat(90)
	return &Quote{
		Lines: []QuoteLine{
			{
				VariantID:      uuid.New(),
				SKU:            "SKU-1",
				Quantity:       2,
				UnitPrice:      valueobject.NewMoneyFromFloat(100),
				DiscountedUnit: unit,
				LineTotal:      unit.MultiplyByInt(2),
			},
		},
		Subtotal:           valueobject.NewMoneyFromFloat(180),
		DiscountedSubtotal: valueobject.NewMoneyFromFloat(180),
		ShippingMethodID:   uuid.New(),
		ShippingCost:       valueobject.NewMoneyFromFloat(15),
		HandlingFee:        valueobject.NewMoneyFromFloat(20),
		Total:              valueobject.NewMoneyFromFloat(215),
		PricedAt:           time.Now(),
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.False(t, o.IsComplete)
	assert.False(t, o.IsReserved)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "90", o.Items[0].UnitPrice.String())
	assert.Equal(t, "215", o.Total.String())

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
}

func TestNewOrder_TrackingCodeFormat(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^gs-20260830-[0-9a-f]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, o.TrackingCode)
		assert.False(t, seen[o.TrackingCode], "tracking codes must not repeat")
		seen[o.TrackingCode] = true
	}
}

func TestNewOrder_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewOrder(uuid.Nil, uuid.New(), testQuote(t), now)
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), uuid.Nil, testQuote(t), now)
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), uuid.New(), &Quote{}, now)
	assert.Error(t, err)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaid, StatusProcessing, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, false},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_MarkPaid(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()

	paidAt := time.Now()
	require.NoError(t, o.MarkPaid("ref-123", paidAt))

	assert.Equal(t, StatusPaid, o.Status)
	require.NotNil(t, o.PaymentDate)
	assert.Equal(t, paidAt, *o.PaymentDate)
	assert.Equal(t, "ref-123", o.PaymentRef)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderPaid, events[0].EventType())

	// paying twice is rejected with a dedicated error
	err = o.MarkPaid("ref-456", time.Now())
	assert.ErrorIs(t, err, shared.ErrAlreadyPaid)
	assert.Equal(t, "ref-123", o.PaymentRef)
}

func TestOrder_Cancel(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), time.Now())
	require.NoError(t, err)

	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)

	// cancelled is terminal
	assert.Error(t, o.Cancel())
	assert.Error(t, o.MarkPaid("ref", time.Now()))
}

func TestOrder_FulfilmentFlow(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), time.Now())
	require.NoError(t, err)

	assert.Error(t, o.StartProcessing(), "cannot process unpaid order")

	require.NoError(t, o.MarkPaid("ref", time.Now()))
	require.NoError(t, o.StartProcessing())
	assert.Error(t, o.Cancel(), "cancel only from pending or paid")
	require.NoError(t, o.Ship())
	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestOrder_Complete_EdgeTriggered(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()

	o.Complete()
	assert.True(t, o.IsComplete)
	require.Len(t, o.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeOrderCompleted, o.GetDomainEvents()[0].EventType())

	// a second call must not emit again
	o.Complete()
	assert.Len(t, o.GetDomainEvents(), 1)
}

func TestOrder_Reservation(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testQuote(t), time.Now())
	require.NoError(t, err)

	until := time.Now().Add(10 * time.Minute)
	o.MarkReserved(until)
	assert.True(t, o.IsReserved)
	require.NotNil(t, o.ReservedUntil)
	assert.False(t, o.ReservationExpired(time.Now()))
	assert.True(t, o.ReservationExpired(until.Add(time.Second)))

	o.ClearReservation()
	assert.False(t, o.IsReserved)
	assert.Nil(t, o.ReservedUntil)
	assert.False(t, o.ReservationExpired(until.Add(time.Hour)))
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{
		UnitPrice: valueobject.NewMoneyFromFloat(12.5).Amount(),
		Quantity:  4,
	}
	assert.Equal(t, "50.000", item.LineTotal().StringFixed(3))
}
