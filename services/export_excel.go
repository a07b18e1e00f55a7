package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates an Excel workbook with the full internal view of
// a quote (all columns, including purchase price and margin) and returns the
// file contents as a byte slice.
func GenerateQuoteExcel(data *QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name (max 31 chars).
	sheetName := data.Folio
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Cotización"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through L).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	lastCol := columns[len(columns)-1] // "L"

	// Set column widths.
	widths := []float64{5, 12, 40, 10, 16, 10, 10, 10, 14, 14, 12, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, brand orange background.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FF7F00"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(fmt.Sprintf("%s — %s", data.CompanyName, data.Folio)))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge client: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Cliente: "+sanitizeExcelCell(data.ClientName))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Fecha: "+data.Date)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	if data.ExchangeRate > 0 {
		if err := f.MergeCell(sheetName, "A4", lastCol+"4"); err != nil {
			return nil, fmt.Errorf("merge rate: %w", err)
		}
		f.SetCellValue(sheetName, "A4", "T.C.: "+FormatRate(data.ExchangeRate))
		f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)
	}

	// ── Row 6: Column Headers ───────────────────────────────────────────

	headers := []string{
		"ID", "CÓDIGO", "DESCRIPCIÓN", "UNIDAD", "PRECIO COMPRA", "CANTIDAD",
		"MONEDA", "MARGEN", "PRECIO", "IMPORTE", "DESCUENTO", "TOTAL",
	}
	for i, h := range headers {
		cell := fmt.Sprintf("%s6", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Data Rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, item := range data.Items {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, item.ID)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(item.Code))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(item.Description))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(item.Unit))
		f.SetCellValue(sheetName, "E"+rowStr, FormatMoney(TruncateCents(item.PurchasePrice), item.Currency))
		f.SetCellValue(sheetName, "F"+rowStr, item.Qty)
		f.SetCellValue(sheetName, "G"+rowStr, string(item.Currency))
		f.SetCellValue(sheetName, "H"+rowStr, FormatPercent(item.MarginPercent))
		f.SetCellValue(sheetName, "I"+rowStr, FormatMoney(item.DisplayPrice, data.Currency))
		f.SetCellValue(sheetName, "J"+rowStr, FormatMoney(item.DisplayImporte, data.Currency))
		f.SetCellValue(sheetName, "K"+rowStr, FormatPercent(item.DiscountPercent))
		f.SetCellValue(sheetName, "L"+rowStr, FormatMoney(item.DisplayTotal, data.Currency))

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	// Skip a blank row.
	row++

	summaries := []struct {
		label string
		value float64
	}{
		{"Importe Total:", data.ImporteTotal},
		{"Descuento:", data.Discount},
		{"Subtotal:", data.Subtotal},
		{"IVA (16%):", data.IVA},
		{"Total a Pagar:", data.GrandTotal},
	}
	for _, s := range summaries {
		if s.label == "Descuento:" && !data.HasDiscounts {
			continue
		}
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "J"+rowStr, s.label)
		f.SetCellStyle(sheetName, "J"+rowStr, "J"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "L"+rowStr, FormatMoney(s.value, data.Currency))
		f.SetCellStyle(sheetName, "L"+rowStr, "L"+rowStr, summaryValueStyle)
		row++
	}

	// Amount in words.
	row++
	rowStr := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
		return nil, fmt.Errorf("merge words: %w", err)
	}
	f.SetCellValue(sheetName, "A"+rowStr, "Cantidad en letras: "+data.AmountInWords)
	f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtitleStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
