package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// HandleQuoteExportPDF returns a handler that generates and downloads a PDF
// rendition of a quote. The layout query parameter picks between the internal
// sheet ("full", default) and the client-facing sheet ("client").
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		layout := services.LayoutFull
		if e.Request.URL.Query().Get("layout") == "client" {
			layout = services.LayoutClient
		}

		data, err := services.BuildQuoteExportData(app, id)
		if err != nil {
			log.Printf("quote_export: failed to build data: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(data, layout)
		if err != nil {
			log.Printf("quote_export: failed to generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(data.Folio))
		if layout == services.LayoutClient {
			filename = fmt.Sprintf("%s_cliente.pdf", sanitizeFilename(data.Folio))
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuoteExportExcel returns a handler that generates and downloads the
// internal spreadsheet view of a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := services.BuildQuoteExportData(app, id)
		if err != nil {
			log.Printf("quote_export: failed to build data: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("quote_export: failed to generate Excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel")
		}

		filename := fmt.Sprintf("%s.xlsx", sanitizeFilename(data.Folio))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	result := replacer.Replace(s)
	if result == "" {
		result = "cotizacion"
	}
	return result
}
