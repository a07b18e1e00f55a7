package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateQuoteExcel(t *testing.T) {
	data := sampleExportData()

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuoteExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "C250309-482" {
		t.Errorf("sheet name = %q, expected folio", sheet)
	}

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Unidad C — C250309-482" {
		t.Errorf("title = %q", title)
	}

	header, _ := f.GetCellValue(sheet, "C6")
	if header != "DESCRIPCIÓN" {
		t.Errorf("header C6 = %q", header)
	}

	desc, _ := f.GetCellValue(sheet, "C7")
	if desc != "Licencia anual" {
		t.Errorf("first item description = %q", desc)
	}

	price, _ := f.GetCellValue(sheet, "I7")
	if price != "$125.00" {
		t.Errorf("first item price = %q", price)
	}
}

func TestGenerateQuoteExcelDisplayColumns(t *testing.T) {
	data := sampleExportData()

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	// Row 8 is the USD item: purchase price stays in USD, but PRECIO,
	// IMPORTE and TOTAL carry the MXN conversion at the stored rate.
	purchase, _ := f.GetCellValue(sheet, "E8")
	if purchase != "$50.00" {
		t.Errorf("USD item purchase price = %q, want $50.00", purchase)
	}
	price, _ := f.GetCellValue(sheet, "I8")
	if price != "$1,840.00" {
		t.Errorf("USD item price = %q, want $1,840.00", price)
	}
	importe, _ := f.GetCellValue(sheet, "J8")
	if importe != "$1,840.00" {
		t.Errorf("USD item importe = %q, want $1,840.00", importe)
	}
	total, _ := f.GetCellValue(sheet, "L8")
	if total != "$1,840.00" {
		t.Errorf("USD item total = %q, want $1,840.00", total)
	}
}

func TestGenerateQuoteExcelTruncatesCells(t *testing.T) {
	data := sampleExportData()
	data.Items = data.Items[:1]
	data.Items[0].PurchasePrice = 29.896907
	data.Items[0].DisplayPrice = TruncateCents(29.896907)
	data.Items[0].DisplayImporte = TruncateCents(29.896907)
	data.Items[0].DisplayTotal = TruncateCents(29.896907)

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	// Third decimal >= 5 must floor, never round up.
	purchase, _ := f.GetCellValue(sheet, "E7")
	if purchase != "$29.89" {
		t.Errorf("purchase price cell = %q, want $29.89", purchase)
	}
	price, _ := f.GetCellValue(sheet, "I7")
	if price != "$29.89" {
		t.Errorf("price cell = %q, want $29.89", price)
	}
	total, _ := f.GetCellValue(sheet, "L7")
	if total != "$29.89" {
		t.Errorf("total cell = %q, want $29.89", total)
	}
}

func TestGenerateQuoteExcelEmptyFolio(t *testing.T) {
	data := &QuoteExportData{
		CompanyName: "Unidad C",
		Currency:    CurrencyMXN,
	}

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	if sheet := f.GetSheetName(0); sheet != "Cotización" {
		t.Errorf("sheet name = %q, expected fallback", sheet)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Licencia anual", "Licencia anual"},
		{"formula equals", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"formula plus", "+1+2", "'+1+2"},
		{"formula minus", "-1", "'-1"},
		{"formula at", "@cmd", "'@cmd"},
		{"pipe", "|x", "'|x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
