package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

type quoteItemForm struct {
	Code            string  `json:"code"`
	Description     string  `json:"description"`
	Unit            string  `json:"unit"`
	PurchasePrice   float64 `json:"purchase_price"`
	Qty             float64 `json:"qty"`
	Currency        string  `json:"currency"`
	MarginPercent   float64 `json:"margin_percent"`
	DiscountPercent float64 `json:"discount_percent"`
}

// getNextSortOrder queries the existing line items for a quote and returns
// the next sort_order value.
func getNextSortOrder(app *pocketbase.PocketBase, quoteId string) int {
	existing, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"-sort_order",
		1,
		0,
		map[string]any{"quoteId": quoteId},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// validateItemForm checks a line item form and returns per-field messages.
// The pricing rules are enforced here so a 100% margin never reaches storage.
func validateItemForm(form *quoteItemForm) map[string]string {
	fieldErrors := make(map[string]string)

	form.Description = strings.TrimSpace(form.Description)
	if form.Description == "" {
		fieldErrors["description"] = "Description is required"
	}
	if form.Qty <= 0 {
		fieldErrors["qty"] = "Quantity must be greater than zero"
	}
	if form.PurchasePrice < 0 {
		fieldErrors["purchase_price"] = "Purchase price must be zero or greater"
	}

	item := services.QuoteItem{
		Qty:             form.Qty,
		PurchasePrice:   form.PurchasePrice,
		MarginPercent:   form.MarginPercent,
		DiscountPercent: form.DiscountPercent,
	}
	if err := services.Recalculate(&item); err != nil {
		if errors.Is(err, services.ErrMarginTooHigh) {
			fieldErrors["margin_percent"] = "Margin must be below 100%"
		} else {
			fieldErrors["margin_percent"] = err.Error()
		}
	}
	// Persist the clamped values, not the raw input.
	form.MarginPercent = item.MarginPercent
	form.DiscountPercent = item.DiscountPercent

	return fieldErrors
}

// HandleQuoteAddItem handles POST /api/quotes/{id}/items.
func HandleQuoteAddItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteId := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteId)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		form := quoteItemForm{}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		if fieldErrors := validateItemForm(&form); len(fieldErrors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors})
		}

		currency := services.Currency(strings.ToUpper(form.Currency))
		if currency != services.CurrencyUSD {
			currency = services.CurrencyMXN
		}
		if string(currency) != quote.GetString("currency") && quote.GetFloat("exchange_rate") <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"currency": "Exchange rate is required for items in another currency"},
			})
		}

		col, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("quote_items: HandleQuoteAddItem: collection missing: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteId)
		record.Set("sort_order", getNextSortOrder(app, quoteId))
		record.Set("code", strings.TrimSpace(form.Code))
		record.Set("description", form.Description)
		record.Set("unit", strings.TrimSpace(form.Unit))
		record.Set("purchase_price", form.PurchasePrice)
		record.Set("qty", form.Qty)
		record.Set("currency", string(currency))
		record.Set("margin_percent", form.MarginPercent)
		record.Set("discount_percent", form.DiscountPercent)

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleQuoteAddItem: could not save item: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save item"})
		}

		return e.JSON(http.StatusCreated, itemResponse(record))
	}
}

// HandleQuoteUpdateItem handles PATCH /api/quotes/{id}/items/{itemId}.
func HandleQuoteUpdateItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteId := e.Request.PathValue("id")
		itemId := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("quote_items", itemId)
		if err != nil || record.GetString("quote") != quoteId {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Item not found"})
		}

		// Start from the stored values so partial updates validate as a whole.
		form := quoteItemForm{
			Code:            record.GetString("code"),
			Description:     record.GetString("description"),
			Unit:            record.GetString("unit"),
			PurchasePrice:   record.GetFloat("purchase_price"),
			Qty:             record.GetFloat("qty"),
			Currency:        record.GetString("currency"),
			MarginPercent:   record.GetFloat("margin_percent"),
			DiscountPercent: record.GetFloat("discount_percent"),
		}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		if fieldErrors := validateItemForm(&form); len(fieldErrors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors})
		}

		currency := services.Currency(strings.ToUpper(form.Currency))
		if currency != services.CurrencyUSD {
			currency = services.CurrencyMXN
		}
		if quote, err := app.FindRecordById("quotes", quoteId); err == nil {
			if string(currency) != quote.GetString("currency") && quote.GetFloat("exchange_rate") <= 0 {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"currency": "Exchange rate is required for items in another currency"},
				})
			}
		}

		record.Set("code", strings.TrimSpace(form.Code))
		record.Set("description", form.Description)
		record.Set("unit", strings.TrimSpace(form.Unit))
		record.Set("purchase_price", form.PurchasePrice)
		record.Set("qty", form.Qty)
		record.Set("currency", string(currency))
		record.Set("margin_percent", form.MarginPercent)
		record.Set("discount_percent", form.DiscountPercent)

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleQuoteUpdateItem: could not save item %s: %v", itemId, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save item"})
		}

		return e.JSON(http.StatusOK, itemResponse(record))
	}
}

// HandleQuoteDeleteItem handles DELETE /api/quotes/{id}/items/{itemId}.
func HandleQuoteDeleteItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteId := e.Request.PathValue("id")
		itemId := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("quote_items", itemId)
		if err != nil || record.GetString("quote") != quoteId {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Item not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_items: HandleQuoteDeleteItem: could not delete item %s: %v", itemId, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not delete item"})
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemId})
	}
}

// itemResponse renders a line item with its derived pricing fields.
func itemResponse(record *core.Record) map[string]any {
	item := services.QuoteItem{
		Qty:             record.GetFloat("qty"),
		PurchasePrice:   record.GetFloat("purchase_price"),
		MarginPercent:   record.GetFloat("margin_percent"),
		DiscountPercent: record.GetFloat("discount_percent"),
	}
	// Stored values are pre-validated; a failure here means stale data.
	if err := services.Recalculate(&item); err != nil {
		log.Printf("quote_items: itemResponse: recalculate failed for %s: %v", record.Id, err)
	}

	return map[string]any{
		"id":               record.Id,
		"quote":            record.GetString("quote"),
		"sort_order":       record.GetInt("sort_order"),
		"code":             record.GetString("code"),
		"description":      record.GetString("description"),
		"unit":             record.GetString("unit"),
		"purchase_price":   record.GetFloat("purchase_price"),
		"qty":              record.GetFloat("qty"),
		"currency":         record.GetString("currency"),
		"margin_percent":   item.MarginPercent,
		"discount_percent": item.DiscountPercent,
		"price":            item.Price,
		"importe":          item.Importe,
		"total":            item.Total,
	}
}
