package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/collections"
	"uctools/handlers"
	"uctools/services"
)

func main() {
	app := pocketbase.New()

	banxico := services.NewBanxicoClient(os.Getenv("BANXICO_TOKEN"))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		collections.SeedDefaults(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quotes ───────────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.PATCH("/api/quotes/{id}", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))
		se.Router.POST("/api/quotes/{id}/folio/refresh", handlers.HandleQuoteRegenerateFolio(app))

		// ── Quote line items ─────────────────────────────────────
		se.Router.POST("/api/quotes/{id}/items", handlers.HandleQuoteAddItem(app))
		se.Router.PATCH("/api/quotes/{id}/items/{itemId}", handlers.HandleQuoteUpdateItem(app))
		se.Router.DELETE("/api/quotes/{id}/items/{itemId}", handlers.HandleQuoteDeleteItem(app))

		// ── Quote exports ────────────────────────────────────────
		se.Router.GET("/api/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/api/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))

		// ── Exchange rate ────────────────────────────────────────
		se.Router.GET("/api/exchange-rate", handlers.HandleExchangeRate(banxico))
		se.Router.POST("/api/quotes/{id}/rate/refresh", handlers.HandleQuoteRefreshRate(app, banxico))

		// ── Password generator ───────────────────────────────────
		se.Router.POST("/api/password", handlers.HandlePasswordGenerate())

		// ── License advisor ──────────────────────────────────────
		se.Router.GET("/api/licenses/recommendation", handlers.HandleLicenseRecommend())

		// ── Criticality questionnaire ────────────────────────────
		se.Router.GET("/api/systems", handlers.HandleSystemList(app))
		se.Router.POST("/api/systems", handlers.HandleSystemCreate(app))
		se.Router.PATCH("/api/systems/{id}", handlers.HandleSystemUpdate(app))
		se.Router.DELETE("/api/systems/{id}", handlers.HandleSystemDelete(app))
		se.Router.GET("/api/criticality/weights", handlers.HandleWeightsGet(app))
		se.Router.PUT("/api/criticality/weights", handlers.HandleWeightsUpdate(app))

		// ── Email templates ──────────────────────────────────────
		se.Router.GET("/api/email-template", handlers.HandleEmailTemplatePreview())
		se.Router.GET("/api/email-template/download", handlers.HandleEmailTemplateDownload())

		// ── Utilities ────────────────────────────────────────────
		se.Router.GET("/api/ip", handlers.HandleClientIP())

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
