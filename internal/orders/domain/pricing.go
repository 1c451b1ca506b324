package domain

import "math"

// DefaultTaxRate is the flat rate applied when the caller supplies none.
const DefaultTaxRate = 0.08

// Totals is the monetary breakdown of an order. Values are kept unrounded so
// repeated recomputation never compounds rounding error; round only at
// presentation time via Rounded.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the order totals from its line items, a flat shipping
// fee, and a tax rate. Discount is reserved for future coupon logic and is
// always zero. Empty items yield zero item-derived totals; the calculator
// does not error, checkout blocks empty carts upstream.
func ComputeTotals(items []Item, shippingFee, taxRate float64) (Totals, error) {
	if shippingFee < 0 {
		return Totals{}, &ValidationError{Field: "shipping", Reason: "must not be negative"}
	}

	var subtotal float64
	for _, item := range items {
		if item.Price < 0 {
			return Totals{}, &ValidationError{Field: "price", Reason: "must not be negative"}
		}
		if item.Quantity < 0 {
			return Totals{}, &ValidationError{Field: "quantity", Reason: "must not be negative"}
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	totals := Totals{
		Subtotal: subtotal,
		Tax:      subtotal * taxRate,
		Shipping: shippingFee,
		Discount: 0,
	}
	totals.Total = totals.Subtotal + totals.Tax + totals.Shipping - totals.Discount

	return totals, nil
}

// Round2 rounds a monetary value to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a presentation copy with every field rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Round2(t.Subtotal),
		Tax:      Round2(t.Tax),
		Shipping: Round2(t.Shipping),
		Discount: Round2(t.Discount),
		Total:    Round2(t.Total),
	}
}
