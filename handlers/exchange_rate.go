package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// HandleExchangeRate handles GET /api/exchange-rate.
// Proxies the Banxico USD/MXN series with the 3-day/7-day window fallback.
// Responses mirror what the rate widget expects: the rate is a 4-decimal
// string, errors are Spanish user-facing messages.
func HandleExchangeRate(client *services.BanxicoClient) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
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
			log.Printf("exchange_rate: HandleExchangeRate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Error al consultar Banxico"})
		}

		e.Response.Header().Set("Cache-Control", "public, max-age=1800")
		return e.JSON(http.StatusOK, map[string]any{
			"rate":  services.FormatRate(rate.Rate),
			"fecha": rate.Date,
		})
	}
}
