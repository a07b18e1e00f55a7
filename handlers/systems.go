package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/collections"
	"uctools/services"
)

type systemForm struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Process      string `json:"process"`
	Location     string `json:"location"`
	SystemType   string `json:"system_type"`
	Operational  int    `json:"impact_operational"`
	Financial    int    `json:"impact_financial"`
	Reputational int    `json:"impact_reputational"`
	Continuity   int    `json:"impact_continuity"`
	RTO          string `json:"rto"`
	RPO          string `json:"rpo"`
}

// loadWeights reads the stored criticality weights, falling back to the
// defaults when nothing has been saved.
func loadWeights(app *pocketbase.PocketBase) services.CriticalityWeights {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": collections.WeightsSettingKey},
	)
	if err != nil || len(records) == 0 {
		return services.DefaultCriticalityWeights()
	}

	var weights services.CriticalityWeights
	if err := records[0].UnmarshalJSONField("value", &weights); err != nil {
		log.Printf("systems: loadWeights: could not decode weights: %v", err)
		return services.DefaultCriticalityWeights()
	}
	return weights
}

// HandleSystemCreate handles POST /api/systems.
// The score and tier are computed once, with the weights in force at save
// time, and stored on the record. Later weight changes never re-score.
func HandleSystemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form := systemForm{}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		form.Name = strings.TrimSpace(form.Name)
		if form.Name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": map[string]string{"name": "Name is required"}})
		}

		col, err := app.FindCollectionByNameOrId("systems")
		if err != nil {
			log.Printf("systems: HandleSystemCreate: collection missing: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		record := core.NewRecord(col)
		applySystemForm(record, form, loadWeights(app))

		if err := app.Save(record); err != nil {
			log.Printf("systems: HandleSystemCreate: could not save: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save system"})
		}

		return e.JSON(http.StatusCreated, systemResponse(record))
	}
}

// HandleSystemList handles GET /api/systems.
func HandleSystemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("systems", "id != ''", "-score", 0, 0, nil)
		if err != nil {
			log.Printf("systems: HandleSystemList: query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		systems := make([]map[string]any, 0, len(records))
		for _, r := range records {
			systems = append(systems, systemResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"systems": systems})
	}
}

// HandleSystemUpdate handles PATCH /api/systems/{id}.
// Changing the impact answers re-scores the system with the current weights.
func HandleSystemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("systems", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "System not found"})
		}

		form := systemForm{
			Name:         record.GetString("name"),
			Description:  record.GetString("description"),
			Process:      record.GetString("process"),
			Location:     record.GetString("location"),
			SystemType:   record.GetString("system_type"),
			Operational:  record.GetInt("impact_operational"),
			Financial:    record.GetInt("impact_financial"),
			Reputational: record.GetInt("impact_reputational"),
			Continuity:   record.GetInt("impact_continuity"),
			RTO:          record.GetString("rto"),
			RPO:          record.GetString("rpo"),
		}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		form.Name = strings.TrimSpace(form.Name)
		if form.Name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": map[string]string{"name": "Name is required"}})
		}

		applySystemForm(record, form, loadWeights(app))

		if err := app.Save(record); err != nil {
			log.Printf("systems: HandleSystemUpdate: could not save %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save system"})
		}

		return e.JSON(http.StatusOK, systemResponse(record))
	}
}

// HandleSystemDelete handles DELETE /api/systems/{id}.
func HandleSystemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("systems", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "System not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("systems: HandleSystemDelete: could not delete %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not delete system"})
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}

// HandleWeightsGet handles GET /api/criticality/weights.
func HandleWeightsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, loadWeights(app))
	}
}

// HandleWeightsUpdate handles PUT /api/criticality/weights.
// Weights are stored as given; they are not rescaled to sum 100 and saved
// systems keep the score they were given.
func HandleWeightsUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		weights := loadWeights(app)
		if err := e.BindBody(&weights); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		if weights.Operational < 0 || weights.Financial < 0 ||
			weights.Reputational < 0 || weights.Continuity < 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Weights must be zero or greater"})
		}

		records, err := app.FindRecordsByFilter(
			"settings", "key = {:key}", "", 1, 0,
			map[string]any{"key": collections.WeightsSettingKey},
		)

		var record *core.Record
		if err == nil && len(records) > 0 {
			record = records[0]
		} else {
			col, err := app.FindCollectionByNameOrId("settings")
			if err != nil {
				log.Printf("systems: HandleWeightsUpdate: settings collection missing: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
			}
			record = core.NewRecord(col)
			record.Set("key", collections.WeightsSettingKey)
		}

		record.Set("value", weights)
		if err := app.Save(record); err != nil {
			log.Printf("systems: HandleWeightsUpdate: could not save weights: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save weights"})
		}

		return e.JSON(http.StatusOK, weights)
	}
}

func applySystemForm(record *core.Record, form systemForm, weights services.CriticalityWeights) {
	impacts := services.ImpactLevels{
		Operational:  form.Operational,
		Financial:    form.Financial,
		Reputational: form.Reputational,
		Continuity:   form.Continuity,
	}
	score := services.CriticalityScore(impacts, weights)

	record.Set("name", form.Name)
	record.Set("description", form.Description)
	record.Set("process", strings.TrimSpace(form.Process))
	record.Set("location", strings.TrimSpace(form.Location))
	record.Set("system_type", strings.TrimSpace(form.SystemType))
	record.Set("impact_operational", form.Operational)
	record.Set("impact_financial", form.Financial)
	record.Set("impact_reputational", form.Reputational)
	record.Set("impact_continuity", form.Continuity)
	record.Set("score", score)
	record.Set("tier", services.CriticalityTier(score))
	record.Set("rto", strings.TrimSpace(form.RTO))
	record.Set("rpo", strings.TrimSpace(form.RPO))
}

func systemResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":                  record.Id,
		"name":                record.GetString("name"),
		"description":         record.GetString("description"),
		"process":             record.GetString("process"),
		"location":            record.GetString("location"),
		"system_type":         record.GetString("system_type"),
		"impact_operational":  record.GetInt("impact_operational"),
		"impact_financial":    record.GetInt("impact_financial"),
		"impact_reputational": record.GetInt("impact_reputational"),
		"impact_continuity":   record.GetInt("impact_continuity"),
		"score":               record.GetFloat("score"),
		"tier":                record.GetString("tier"),
		"rto":                 record.GetString("rto"),
		"rpo":                 record.GetString("rpo"),
	}
}
