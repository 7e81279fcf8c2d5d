// Package pricing holds the storefront pricing policy applied by the
// checkout flow: flat shipping below a free-shipping threshold and a
// fixed-rate sales tax.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy carries the pricing knobs. The zero value charges nothing; use
// DefaultPolicy or NewPolicy.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// Quote is a priced cart: order total = subtotal + shipping + tax.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// DefaultPolicy is free shipping above 50.00, a 9.99 flat fee otherwise
// and 8% tax.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// NewPolicy parses the knobs from their string representations, as
// carried by the configuration layer.
func NewPolicy(freeShippingThreshold, shippingFee, taxRate string) (Policy, error) {
	threshold, err := decimal.NewFromString(freeShippingThreshold)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid free shipping threshold: %w", err)
	}
	fee, err := decimal.NewFromString(shippingFee)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid shipping fee: %w", err)
	}
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid tax rate: %w", err)
	}
	return Policy{FreeShippingThreshold: threshold, ShippingFee: fee, TaxRate: rate}, nil
}

// Shipping charges the flat fee when the subtotal is at or below the
// threshold and waives it above.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

// Tax is the fixed percentage of the subtotal, rounded to cents.
func (p Policy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

// Quote prices a subtotal under this policy.
func (p Policy) Quote(subtotal decimal.Decimal) Quote {
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
