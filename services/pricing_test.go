package services

import (
	"errors"
	"math"
	"testing"
)

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name          string
		item          QuoteItem
		expectPrice   float64
		expectImporte float64
		expectTotal   float64
	}{
		{
			name:          "reference scenario",
			item:          QuoteItem{PurchasePrice: 100, MarginPercent: 20, Qty: 2, DiscountPercent: 10},
			expectPrice:   125,
			expectImporte: 250,
			expectTotal:   225,
		},
		{
			name:          "zero margin passes purchase price through",
			item:          QuoteItem{PurchasePrice: 80, MarginPercent: 0, Qty: 3},
			expectPrice:   80,
			expectImporte: 240,
			expectTotal:   240,
		},
		{
			name:          "full discount zeroes the total",
			item:          QuoteItem{PurchasePrice: 50, MarginPercent: 50, Qty: 1, DiscountPercent: 100},
			expectPrice:   100,
			expectImporte: 100,
			expectTotal:   0,
		},
		{
			name:          "negative percentages clamp to zero",
			item:          QuoteItem{PurchasePrice: 10, MarginPercent: -5, Qty: 1, DiscountPercent: -20},
			expectPrice:   10,
			expectImporte: 10,
			expectTotal:   10,
		},
		{
			name:          "zero quantity",
			item:          QuoteItem{PurchasePrice: 10, MarginPercent: 10, Qty: 0},
			expectPrice:   10 / 0.9,
			expectImporte: 0,
			expectTotal:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			if err := Recalculate(&item); err != nil {
				t.Fatalf("Recalculate() error = %v", err)
			}
			if math.Abs(item.Price-tt.expectPrice) > 0.0001 {
				t.Errorf("Price = %v, want %v", item.Price, tt.expectPrice)
			}
			if math.Abs(item.Importe-tt.expectImporte) > 0.0001 {
				t.Errorf("Importe = %v, want %v", item.Importe, tt.expectImporte)
			}
			if math.Abs(item.Total-tt.expectTotal) > 0.0001 {
				t.Errorf("Total = %v, want %v", item.Total, tt.expectTotal)
			}
		})
	}
}

func TestRecalculateRejectsFullMargin(t *testing.T) {
	item := QuoteItem{PurchasePrice: 100, MarginPercent: 100, Qty: 1}
	if err := Recalculate(&item); !errors.Is(err, ErrMarginTooHigh) {
		t.Fatalf("Recalculate() error = %v, want ErrMarginTooHigh", err)
	}

	// Over-100 margins clamp to 100 first and are rejected the same way.
	item = QuoteItem{PurchasePrice: 100, MarginPercent: 150, Qty: 1}
	if err := Recalculate(&item); !errors.Is(err, ErrMarginTooHigh) {
		t.Fatalf("Recalculate() with clamped margin error = %v, want ErrMarginTooHigh", err)
	}
}

func TestRecalculateInvertsMarginFormula(t *testing.T) {
	// unitPrice * (1 - margin/100) must recover the purchase price for any
	// margin below 100.
	for _, margin := range []float64{0, 1, 20, 50, 75, 99, 99.9} {
		item := QuoteItem{PurchasePrice: 137.53, MarginPercent: margin, Qty: 1}
		if err := Recalculate(&item); err != nil {
			t.Fatalf("margin %v: unexpected error %v", margin, err)
		}
		back := item.Price * (1 - margin/100)
		if math.Abs(back-item.PurchasePrice) > 1e-9 {
			t.Errorf("margin %v: price*(1-m) = %v, want %v", margin, back, item.PurchasePrice)
		}
	}
}

func TestConvert(t *testing.T) {
	const rate = 17.25

	tests := []struct {
		name   string
		value  float64
		from   Currency
		to     Currency
		expect float64
	}{
		{"same currency is a no-op", 123.45, CurrencyMXN, CurrencyMXN, 123.45},
		{"usd to mxn multiplies", 10, CurrencyUSD, CurrencyMXN, 172.5},
		{"mxn to usd divides", 172.5, CurrencyMXN, CurrencyUSD, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.value, tt.from, tt.to, rate)
			if math.Abs(got-tt.expect) > 0.0001 {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Converting to the other currency and back must land within one cent
	// of truncation tolerance.
	rates := []float64{17.0134, 19.9999, 16.5}
	values := []float64{0.01, 1, 99.99, 1234.56, 100000}

	for _, rate := range rates {
		for _, v := range values {
			there := Convert(v, CurrencyMXN, CurrencyUSD, rate)
			back := Convert(there, CurrencyUSD, CurrencyMXN, rate)
			if math.Abs(TruncateCents(back)-TruncateCents(v)) > 0.01 {
				t.Errorf("rate %v: round trip of %v = %v", rate, v, back)
			}
		}
	}
}

func TestTruncateCents(t *testing.T) {
	tests := []struct {
		in     float64
		expect float64
	}{
		{1.999, 1.99},
		{1.991, 1.99},
		{1.99, 1.99},
		{0, 0},
		{0.009, 0},
		{225.0000001, 225},
	}

	for _, tt := range tests {
		if got := TruncateCents(tt.in); got != tt.expect {
			t.Errorf("TruncateCents(%v) = %v, want %v", tt.in, got, tt.expect)
		}
	}
}

func TestCalcQuoteTotals(t *testing.T) {
	mustItem := func(purchase, margin, qty, discount float64, cur Currency) QuoteItem {
		t.Helper()
		item := QuoteItem{PurchasePrice: purchase, MarginPercent: margin, Qty: qty, DiscountPercent: discount, Currency: cur}
		if err := Recalculate(&item); err != nil {
			t.Fatalf("Recalculate: %v", err)
		}
		return item
	}

	t.Run("single currency matches the tax identity", func(t *testing.T) {
		items := []QuoteItem{
			mustItem(100, 20, 2, 10, CurrencyMXN),
			mustItem(37.50, 25, 4, 0, CurrencyMXN),
		}

		totals := CalcQuoteTotals(items, CurrencyMXN, 0)

		var importe, discount float64
		for _, it := range items {
			importe += it.Importe
			discount += it.Importe - it.Total
		}
		expectTotal := TruncateCents((importe - discount) * (1 + IVARate))

		if totals.Total != expectTotal {
			t.Errorf("Total = %v, want %v", totals.Total, expectTotal)
		}
		if totals.Importe != TruncateCents(importe) {
			t.Errorf("Importe = %v, want %v", totals.Importe, TruncateCents(importe))
		}
		if totals.Subtotal != TruncateCents(importe-discount) {
			t.Errorf("Subtotal = %v, want %v", totals.Subtotal, TruncateCents(importe-discount))
		}
	})

	t.Run("mixed currencies convert by snapshot rate", func(t *testing.T) {
		const rate = 20.0
		items := []QuoteItem{
			mustItem(100, 0, 1, 0, CurrencyMXN), // 100 MXN
			mustItem(10, 0, 1, 0, CurrencyUSD),  // 200 MXN at rate 20
		}

		totals := CalcQuoteTotals(items, CurrencyMXN, rate)
		if totals.Importe != 300 {
			t.Errorf("Importe = %v, want 300", totals.Importe)
		}
		if totals.IVA != 48 {
			t.Errorf("IVA = %v, want 48", totals.IVA)
		}
		if totals.Total != 348 {
			t.Errorf("Total = %v, want 348", totals.Total)
		}
	})

	t.Run("empty quote yields zeroes", func(t *testing.T) {
		totals := CalcQuoteTotals(nil, CurrencyMXN, 17)
		if totals != (QuoteTotals{}) {
			t.Errorf("totals = %+v, want zero value", totals)
		}
	})
}

func TestHasDiscounts(t *testing.T) {
	if HasDiscounts([]QuoteItem{{DiscountPercent: 0}, {DiscountPercent: 0}}) {
		t.Error("HasDiscounts() = true for undiscounted items")
	}
	if !HasDiscounts([]QuoteItem{{DiscountPercent: 0}, {DiscountPercent: 5}}) {
		t.Error("HasDiscounts() = false with a discounted item")
	}
}
