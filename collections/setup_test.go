package collections_test

import (
	"testing"

	"uctools/collections"
	"uctools/services"
	"uctools/testhelpers"
)

func TestSetupCreatesCollections(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for _, name := range []string{"quotes", "quote_items", "systems", "settings"} {
		if _, err := app.FindCollectionByNameOrId(name); err != nil {
			t.Errorf("collection %q was not created: %v", name, err)
		}
	}
}

func TestSetupIsIdempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Running setup again must not fail or duplicate collections.
	collections.Setup(app)

	if _, err := app.FindCollectionByNameOrId("quotes"); err != nil {
		t.Fatalf("quotes collection missing after re-run: %v", err)
	}
}

func TestQuoteItemsCascadeDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	quote := testhelpers.CreateTestQuote(t, app, "C250309-001")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Licencia anual", 100, 2, 20, 0)

	if err := app.Delete(quote); err != nil {
		t.Fatalf("failed to delete quote: %v", err)
	}

	if _, err := app.FindRecordById("quote_items", item.Id); err == nil {
		t.Error("expected line item to be deleted with its quote")
	}
}

func TestSeedDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		0,
		0,
		map[string]any{"key": collections.WeightsSettingKey},
	)
	if err != nil {
		t.Fatalf("could not query settings: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 weights record, got %d", len(records))
	}

	var weights services.CriticalityWeights
	if err := records[0].UnmarshalJSONField("value", &weights); err != nil {
		t.Fatalf("could not decode weights: %v", err)
	}
	if weights != services.DefaultCriticalityWeights() {
		t.Errorf("weights = %+v, expected defaults", weights)
	}

	// Re-running must not duplicate the record.
	collections.SeedDefaults(app)
	records, _ = app.FindRecordsByFilter(
		"settings", "key = {:key}", "", 0, 0,
		map[string]any{"key": collections.WeightsSettingKey},
	)
	if len(records) != 1 {
		t.Errorf("expected seed to be idempotent, got %d records", len(records))
	}
}
