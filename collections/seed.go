package collections

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// WeightsSettingKey is the settings record holding the criticality weights.
const WeightsSettingKey = "criticality_weights"

// SeedDefaults inserts the stock criticality weight set when no weights have
// been saved yet. Existing values are never overwritten.
func SeedDefaults(app *pocketbase.PocketBase) {
	existing, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": WeightsSettingKey},
	)
	if err == nil && len(existing) > 0 {
		return
	}

	settings, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		log.Printf("seed: settings collection not found: %v", err)
		return
	}

	record := core.NewRecord(settings)
	record.Set("key", WeightsSettingKey)
	record.Set("value", services.DefaultCriticalityWeights())

	if err := app.Save(record); err != nil {
		log.Printf("seed: could not save default weights: %v", err)
	}
}
