package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// QuoteExportData holds all data needed to generate a quote PDF or sheet.
type QuoteExportData struct {
	// Issuer (hardcoded for now)
	CompanyName    string
	CompanyTagline string
	CompanyWebsite string

	// Quote header
	Folio        string
	Date         string
	ExchangeRate float64

	// Client
	ClientName    string
	ClientRFC     string
	ClientContact string
	ClientEmail   string
	ClientPhone   string

	// Display currency of the document
	Currency Currency

	Items []QuoteExportItem

	// Totals, in display currency, floor-truncated to cents
	ImporteTotal  float64
	Discount      float64
	Subtotal      float64
	IVA           float64
	GrandTotal    float64
	AmountInWords string

	Observations string
	HasDiscounts bool
}

// QuoteExportItem holds a single line item for export. Display* amounts are
// converted to the document currency; the raw Price/Importe/Total stay in the
// item's own currency.
type QuoteExportItem struct {
	ID              int
	Code            string
	Description     string
	Unit            string
	Qty             float64
	Currency        Currency
	PurchasePrice   float64
	MarginPercent   float64
	Price           float64
	Importe         float64
	DiscountPercent float64
	Total           float64

	DisplayPrice   float64
	DisplayImporte float64
	DisplayTotal   float64
}

// BuildQuoteExportData assembles all data needed for document generation from
// PocketBase records.
func BuildQuoteExportData(app *pocketbase.PocketBase, quoteId string) (*QuoteExportData, error) {
	// 1. Find quote record
	quote, err := app.FindRecordById("quotes", quoteId)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	currency := Currency(quote.GetString("currency"))
	if currency != CurrencyUSD {
		currency = CurrencyMXN
	}
	rate := quote.GetFloat("exchange_rate")

	// 2. Fetch line items
	itemRecords, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order",
		0,
		0,
		map[string]any{"quoteId": quoteId},
	)
	if err != nil {
		log.Printf("export_data: could not fetch items for quote %s: %v", quoteId, err)
		itemRecords = nil
	}

	// 3. Recalculate each item and convert for display
	var items []QuoteExportItem
	var calcItems []QuoteItem

	for i, rec := range itemRecords {
		item := QuoteItem{
			Code:            rec.GetString("code"),
			Description:     rec.GetString("description"),
			Unit:            rec.GetString("unit"),
			Qty:             rec.GetFloat("qty"),
			Currency:        Currency(rec.GetString("currency")),
			PurchasePrice:   rec.GetFloat("purchase_price"),
			MarginPercent:   rec.GetFloat("margin_percent"),
			DiscountPercent: rec.GetFloat("discount_percent"),
		}
		if item.Currency != CurrencyUSD {
			item.Currency = CurrencyMXN
		}
		if err := Recalculate(&item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		calcItems = append(calcItems, item)

		items = append(items, QuoteExportItem{
			ID:              i + 1,
			Code:            item.Code,
			Description:     item.Description,
			Unit:            item.Unit,
			Qty:             item.Qty,
			Currency:        item.Currency,
			PurchasePrice:   item.PurchasePrice,
			MarginPercent:   item.MarginPercent,
			Price:           item.Price,
			Importe:         item.Importe,
			DiscountPercent: item.DiscountPercent,
			Total:           item.Total,
			DisplayPrice:    TruncateCents(Convert(item.Price, item.Currency, currency, rate)),
			DisplayImporte:  TruncateCents(Convert(item.Importe, item.Currency, currency, rate)),
			DisplayTotal:    TruncateCents(Convert(item.Total, item.Currency, currency, rate)),
		})
	}

	// 4. Order-level totals in display currency
	totals := CalcQuoteTotals(calcItems, currency, rate)

	return &QuoteExportData{
		CompanyName:    "Unidad C",
		CompanyTagline: "Consultoría y Soluciones en TI",
		CompanyWebsite: "www.unidadc.com",

		Folio:        quote.GetString("folio"),
		Date:         FormatDate(quote.GetString("date")),
		ExchangeRate: rate,

		ClientName:    quote.GetString("client_name"),
		ClientRFC:     quote.GetString("client_rfc"),
		ClientContact: quote.GetString("client_contact"),
		ClientEmail:   quote.GetString("client_email"),
		ClientPhone:   quote.GetString("client_phone"),

		Currency: currency,
		Items:    items,

		ImporteTotal:  totals.Importe,
		Discount:      totals.Discount,
		Subtotal:      totals.Subtotal,
		IVA:           totals.IVA,
		GrandTotal:    totals.Total,
		AmountInWords: AmountToWords(totals.Total, currency),

		Observations: quote.GetString("observations"),
		HasDiscounts: HasDiscounts(calcItems),
	}, nil
}
