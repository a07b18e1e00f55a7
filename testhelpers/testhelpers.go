// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)
	collections.SeedDefaults(app)

	return app
}

// CreateTestQuote creates a quote record with the given folio and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, folio string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("folio", folio)
	record.Set("date", "2025-03-09")
	record.Set("client_name", "ACME SA DE CV")
	record.Set("client_rfc", "ACM010101AB1")
	record.Set("client_email", "compras@acme.mx")
	record.Set("currency", "MXN")
	record.Set("exchange_rate", 18.4)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a line item record linked to a quote.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, description string, purchasePrice, qty, margin, discount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("code", "SW-001")
	record.Set("description", description)
	record.Set("unit", "PZA")
	record.Set("purchase_price", purchasePrice)
	record.Set("qty", qty)
	record.Set("currency", "MXN")
	record.Set("margin_percent", margin)
	record.Set("discount_percent", discount)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// CreateTestSystem creates an inventoried system record for the criticality
// questionnaire with the given impact answers.
func CreateTestSystem(t *testing.T, app *pocketbase.PocketBase, name string, operational, financial, reputational, continuity int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("systems")
	if err != nil {
		t.Fatalf("failed to find systems collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("impact_operational", operational)
	record.Set("impact_financial", financial)
	record.Set("impact_reputational", reputational)
	record.Set("impact_continuity", continuity)
	record.Set("rto", "4h")
	record.Set("rpo", "24h")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test system: %v", err)
	}

	return record
}

// AssertBodyContains checks that body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
