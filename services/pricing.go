// Package services provides the calculation and document-generation logic
// behind the quotation, scoring and advisory tools.
package services

import (
	"errors"
	"math"
)

// Currency identifies one of the two supported quote currencies.
type Currency string

const (
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
)

// IVARate is the flat tax applied to the discounted subtotal of a quote.
const IVARate = 0.16

// ErrMarginTooHigh is returned when a 100% margin would make the unit price
// formula divide by zero.
var ErrMarginTooHigh = errors.New("margin must be below 100%")

// QuoteItem is a single quoted line. Price, Importe and Total are derived
// fields; they are only ever written by Recalculate.
type QuoteItem struct {
	Code            string
	Description     string
	Qty             float64
	Unit            string
	PurchasePrice   float64
	Currency        Currency
	MarginPercent   float64
	Price           float64
	Importe         float64
	DiscountPercent float64
	Total           float64
}

// Recalculate recomputes every derived field of an item from its base
// fields. Margin and discount are clamped to [0,100]; a margin of exactly
// 100 is rejected instead of producing an infinite price.
//
//	price   = purchase / (1 - margin/100)
//	importe = price * qty
//	total   = importe * (1 - discount/100)
func Recalculate(item *QuoteItem) error {
	item.MarginPercent = ClampPercent(item.MarginPercent)
	item.DiscountPercent = ClampPercent(item.DiscountPercent)

	if item.MarginPercent >= 100 {
		return ErrMarginTooHigh
	}

	item.Price = item.PurchasePrice / (1 - item.MarginPercent/100)
	item.Importe = item.Price * item.Qty
	item.Total = item.Importe * (1 - item.DiscountPercent/100)
	return nil
}

// ClampPercent bounds a percentage field to [0,100].
func ClampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Convert moves a value between the two quote currencies using the given
// USD/MXN rate. Same-currency conversion is a no-op.
func Convert(value float64, from, to Currency, rate float64) float64 {
	if from == to {
		return value
	}
	if from == CurrencyUSD && to == CurrencyMXN {
		return value * rate
	}
	if from == CurrencyMXN && to == CurrencyUSD {
		return value / rate
	}
	return value
}

// TruncateCents floors a monetary value to two decimals. Displayed amounts
// are truncated, never rounded.
func TruncateCents(v float64) float64 {
	return math.Floor(v*100) / 100
}

// QuoteTotals holds the aggregated amounts of a quote in its display
// currency, each truncated to cents.
type QuoteTotals struct {
	Importe  float64
	Discount float64
	Subtotal float64
	IVA      float64
	Total    float64
}

// CalcQuoteTotals aggregates line items into order totals, converting each
// item into the display currency with the snapshot rate first. The order
// discount is derived as importe - total per item so line-level truncation
// carries through unchanged.
func CalcQuoteTotals(items []QuoteItem, display Currency, rate float64) QuoteTotals {
	var importe, discount float64
	for _, item := range items {
		conv := Convert(item.Importe, item.Currency, display, rate)
		convTotal := Convert(item.Total, item.Currency, display, rate)
		importe += conv
		discount += conv - convTotal
	}

	subtotal := importe - discount
	iva := subtotal * IVARate
	total := subtotal + iva

	return QuoteTotals{
		Importe:  TruncateCents(importe),
		Discount: TruncateCents(discount),
		Subtotal: TruncateCents(subtotal),
		IVA:      TruncateCents(iva),
		Total:    TruncateCents(total),
	}
}

// HasDiscounts reports whether any line carries a discount. The client
// export layout drops the discount column when this is false.
func HasDiscounts(items []QuoteItem) bool {
	for _, item := range items {
		if item.DiscountPercent > 0 {
			return true
		}
	}
	return false
}
