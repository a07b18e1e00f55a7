package services_test

import (
	"math"
	"testing"

	"uctools/services"
	"uctools/testhelpers"
)

func TestBuildQuoteExportDataTruncatesDisplayAmounts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "C250309-482")

	// 29 / (1 - 0.03) = 29.896907..., which must floor to 29.89 on every
	// displayed cell, never round up to 29.90.
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Licencia anual", 29, 1, 3, 0)

	data, err := services.BuildQuoteExportData(app, quote.Id)
	if err != nil {
		t.Fatalf("BuildQuoteExportData() error = %v", err)
	}
	if len(data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data.Items))
	}

	item := data.Items[0]
	if math.Abs(item.DisplayPrice-29.89) > 1e-9 {
		t.Errorf("DisplayPrice = %v, want 29.89", item.DisplayPrice)
	}
	if math.Abs(item.DisplayImporte-29.89) > 1e-9 {
		t.Errorf("DisplayImporte = %v, want 29.89", item.DisplayImporte)
	}
	if math.Abs(item.DisplayTotal-29.89) > 1e-9 {
		t.Errorf("DisplayTotal = %v, want 29.89", item.DisplayTotal)
	}

	if got := services.FormatMoney(item.DisplayPrice, data.Currency); got != "$29.89" {
		t.Errorf("FormatMoney(DisplayPrice) = %q, want $29.89", got)
	}
}

func TestBuildQuoteExportDataConvertsForeignItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "C250309-483")

	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Punto de acceso", 10, 1, 0, 0)
	item.Set("currency", "USD")
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to update item currency: %v", err)
	}

	data, err := services.BuildQuoteExportData(app, quote.Id)
	if err != nil {
		t.Fatalf("BuildQuoteExportData() error = %v", err)
	}
	if len(data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data.Items))
	}

	got := data.Items[0]
	// Raw values stay in USD; display values carry the MXN conversion at the
	// stored rate of 18.4.
	if math.Abs(got.Price-10) > 1e-9 {
		t.Errorf("Price = %v, want 10 (USD)", got.Price)
	}
	if math.Abs(got.DisplayPrice-184) > 1e-9 {
		t.Errorf("DisplayPrice = %v, want 184 (MXN)", got.DisplayPrice)
	}
	if math.Abs(got.DisplayImporte-184) > 1e-9 {
		t.Errorf("DisplayImporte = %v, want 184 (MXN)", got.DisplayImporte)
	}
	if math.Abs(got.DisplayTotal-184) > 1e-9 {
		t.Errorf("DisplayTotal = %v, want 184 (MXN)", got.DisplayTotal)
	}
}
