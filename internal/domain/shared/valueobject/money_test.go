package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100)
	b := NewMoneyFromFloat(15.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "115.500", sum.StringFixed(3))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "84.500", diff.StringFixed(3))

	assert.Equal(t, "200.000", a.MultiplyByInt(2).StringFixed(3))
	assert.Equal(t, "10.000", a.CalculatePercentage(decimal.NewFromInt(10)).StringFixed(3))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd, err := NewMoney(decimal.NewFromInt(10), USD)
	require.NoError(t, err)
	eur, err := NewMoney(decimal.NewFromInt(10), EUR)
	require.NoError(t, err)

	_, err = usd.Add(eur)
	assert.Error(t, err)
	_, err = usd.Subtract(eur)
	assert.Error(t, err)
	_, err = usd.LessThan(eur)
	assert.Error(t, err)
	assert.Panics(t, func() { usd.MustAdd(eur) })
}

func TestMoney_ClampZero(t *testing.T) {
	small := NewMoneyFromFloat(3)
	big := NewMoneyFromFloat(10)

	diff, err := small.Subtract(big)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.ClampZero().IsZero())
	assert.Equal(t, small, small.ClampZero())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(179)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("179.000"))
	assert.Equal(t, "179.000", m.StringFixed(3))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
