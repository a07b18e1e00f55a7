package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// RateMarkup is added on top of the published Banxico rate when a quote
// refreshes its snapshot. The gateway itself returns the raw rate.
const RateMarkup = 0.15

// HandleQuoteRefreshRate handles POST /api/quotes/{id}/rate/refresh.
// Fetches the latest published rate, applies the markup and stores the
// result on the quote as its conversion snapshot.
func HandleQuoteRefreshRate(app *pocketbase.PocketBase, client *services.BanxicoClient) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Quote not found"})
		}

		if client.Token == "" {
			return e.JSON(http.StatusInternalServerError, map[string]any{
				"error":    "Token no configurado",
				"hasToken": false,
			})
		}

		rate, err := client.LatestRate()
		if err != nil {
			if errors.Is(err, services.ErrNoExchangeData) {
				return e.JSON(http.StatusNotFound, map[string]any{"error": "Sin datos disponibles"})
			}
			log.Printf("quote_rate: HandleQuoteRefreshRate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Error al consultar Banxico"})
		}

		if rate.Rate <= 0 {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "Sin datos disponibles"})
		}

		marked := rate.Rate + RateMarkup
		record.Set("exchange_rate", marked)
		if err := app.Save(record); err != nil {
			log.Printf("quote_rate: HandleQuoteRefreshRate: could not save quote %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Could not save quote"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"exchange_rate": marked,
			"rate":          services.FormatRate(marked),
			"fecha":         rate.Date,
		})
	}
}
