// Package handlers wires the HTTP API for the quotation and consulting tools.
package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

type quoteForm struct {
	Date          string  `json:"date"`
	ClientName    string  `json:"client_name"`
	ClientRFC     string  `json:"client_rfc"`
	ClientContact string  `json:"client_contact"`
	ClientEmail   string  `json:"client_email"`
	ClientPhone   string  `json:"client_phone"`
	Currency      string  `json:"currency"`
	ExchangeRate  float64 `json:"exchange_rate"`
	Observations  string  `json:"observations"`
}

// HandleQuoteCreate handles POST /api/quotes.
// Creates a quote with a freshly generated folio.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form := quoteForm{}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		currency := services.Currency(strings.ToUpper(form.Currency))
		if currency != services.CurrencyUSD {
			currency = services.CurrencyMXN
		}
		if currency == services.CurrencyUSD && form.ExchangeRate <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"exchange_rate": "Exchange rate is required for USD quotes"},
			})
		}

		if form.Date == "" {
			form.Date = time.Now().Format("2006-01-02")
		}

		folio, err := services.GenerateFolio(app, time.Now())
		if err != nil {
			log.Printf("quotes: HandleQuoteCreate: could not generate folio: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not generate folio"})
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quotes: HandleQuoteCreate: quotes collection missing: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		record := core.NewRecord(col)
		record.Set("folio", folio)
		record.Set("date", form.Date)
		record.Set("client_name", strings.TrimSpace(form.ClientName))
		record.Set("client_rfc", strings.ToUpper(strings.TrimSpace(form.ClientRFC)))
		record.Set("client_contact", strings.TrimSpace(form.ClientContact))
		record.Set("client_email", strings.ToLower(strings.TrimSpace(form.ClientEmail)))
		record.Set("client_phone", strings.TrimSpace(form.ClientPhone))
		record.Set("currency", string(currency))
		record.Set("exchange_rate", form.ExchangeRate)
		record.Set("observations", form.Observations)

		if err := app.Save(record); err != nil {
			log.Printf("quotes: HandleQuoteCreate: could not save quote: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save quote"})
		}

		return e.JSON(http.StatusCreated, quoteResponse(record))
	}
}

// HandleQuoteList handles GET /api/quotes.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("quotes", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("quotes: HandleQuoteList: query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		quotes := make([]map[string]any, 0, len(records))
		for _, r := range records {
			quotes = append(quotes, quoteResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}

// HandleQuoteView handles GET /api/quotes/{id}.
// Returns the quote together with its recalculated items and totals.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Missing quote ID"})
		}

		data, err := services.BuildQuoteExportData(app, id)
		if err != nil {
			log.Printf("quotes: HandleQuoteView: %v", err)
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":             id,
			"folio":          data.Folio,
			"date":           data.Date,
			"client_name":    data.ClientName,
			"client_rfc":     data.ClientRFC,
			"client_contact": data.ClientContact,
			"client_email":   data.ClientEmail,
			"client_phone":   data.ClientPhone,
			"currency":       data.Currency,
			"exchange_rate":  data.ExchangeRate,
			"observations":   data.Observations,
			"items":          data.Items,
			"totals": map[string]any{
				"importe":  data.ImporteTotal,
				"discount": data.Discount,
				"subtotal": data.Subtotal,
				"iva":      data.IVA,
				"total":    data.GrandTotal,
			},
			"amount_in_words": data.AmountInWords,
		})
	}
}

// HandleQuoteUpdate handles PATCH /api/quotes/{id}.
// The folio is immutable; only client data and currency settings change.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		form := map[string]any{}
		if err := e.BindBody(&form); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		allowed := []string{
			"date", "client_name", "client_rfc", "client_contact",
			"client_email", "client_phone", "currency", "exchange_rate",
			"observations",
		}
		for _, field := range allowed {
			if v, ok := form[field]; ok {
				if field == "currency" {
					cur, _ := v.(string)
					if services.Currency(strings.ToUpper(cur)) != services.CurrencyUSD {
						cur = string(services.CurrencyMXN)
					} else {
						cur = string(services.CurrencyUSD)
					}
					record.Set("currency", cur)
					continue
				}
				record.Set(field, v)
			}
		}

		// A display-currency switch needs a conversion rate on file.
		if record.GetString("currency") != string(services.CurrencyMXN) && record.GetFloat("exchange_rate") <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"exchange_rate": "Exchange rate is required for USD quotes"},
			})
		}

		if err := app.Save(record); err != nil {
			log.Printf("quotes: HandleQuoteUpdate: could not save quote %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save quote"})
		}

		return e.JSON(http.StatusOK, quoteResponse(record))
	}
}

// HandleQuoteRegenerateFolio handles POST /api/quotes/{id}/folio/refresh.
// Issues a fresh folio for the current date; the old one is discarded.
func HandleQuoteRegenerateFolio(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		folio, err := services.GenerateFolio(app, time.Now())
		if err != nil {
			log.Printf("quotes: HandleQuoteRegenerateFolio: could not generate folio: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not generate folio"})
		}

		record.Set("folio", folio)
		if err := app.Save(record); err != nil {
			log.Printf("quotes: HandleQuoteRegenerateFolio: could not save quote %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save quote"})
		}

		return e.JSON(http.StatusOK, quoteResponse(record))
	}
}

// HandleQuoteDelete handles DELETE /api/quotes/{id}.
// Line items go with the quote via cascade delete.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotes: HandleQuoteDelete: could not delete quote %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not delete quote"})
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}

func quoteResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":             record.Id,
		"folio":          record.GetString("folio"),
		"date":           record.GetString("date"),
		"client_name":    record.GetString("client_name"),
		"client_rfc":     record.GetString("client_rfc"),
		"client_contact": record.GetString("client_contact"),
		"client_email":   record.GetString("client_email"),
		"client_phone":   record.GetString("client_phone"),
		"currency":       record.GetString("currency"),
		"exchange_rate":  record.GetFloat("exchange_rate"),
		"observations":   record.GetString("observations"),
	}
}
