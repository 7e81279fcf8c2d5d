package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteAboveFreeShippingThreshold(t *testing.T) {
	q := DefaultPolicy().Quote(decimal.NewFromInt(60))

	assert.Equal(t, "0.00", q.Shipping.StringFixed(2))
	assert.Equal(t, "4.80", q.Tax.StringFixed(2))
	assert.Equal(t, "64.80", q.Total.StringFixed(2))
}

func TestQuoteBelowFreeShippingThreshold(t *testing.T) {
	q := DefaultPolicy().Quote(decimal.NewFromInt(30))

	assert.Equal(t, "9.99", q.Shipping.StringFixed(2))
	assert.Equal(t, "2.40", q.Tax.StringFixed(2))
	assert.Equal(t, "42.39", q.Total.StringFixed(2))
}

func TestShippingChargedAtThreshold(t *testing.T) {
	p := DefaultPolicy()

	// fee applies at exactly 50.00 and is only waived above it
	assert.Equal(t, "9.99", p.Shipping(decimal.NewFromInt(50)).StringFixed(2))
	assert.Equal(t, "0.00", p.Shipping(decimal.RequireFromString("50.01")).StringFixed(2))
}

func TestTaxRoundsToCents(t *testing.T) {
	p := DefaultPolicy()

	// 8% of 10.55 is 0.844
	assert.Equal(t, "0.84", p.Tax(decimal.RequireFromString("10.55")).StringFixed(2))
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("50", "9.99", "0.08")
	require.NoError(t, err)
	assert.True(t, p.ShippingFee.Equal(decimal.RequireFromString("9.99")))

	_, err = NewPolicy("fifty", "9.99", "0.08")
	assert.Error(t, err)
}
