package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// QuoteLayout selects which PDF rendition of a quote to generate.
type QuoteLayout string

const (
	// LayoutFull is the internal sheet: landscape, every column including
	// purchase price and margin.
	LayoutFull QuoteLayout = "full"
	// LayoutClient is the client-facing sheet: portrait, cost columns
	// hidden, discount column only when a discount exists.
	LayoutClient QuoteLayout = "client"
)

var brandOrange = &props.Color{Red: 255, Green: 127, Blue: 0}

// Grid sizes picked so every column layout sums exactly.
const (
	fullGridSize   = 20
	clientGridSize = 13
)

// GenerateQuotePDF creates a PDF document for a quote using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data *QuoteExportData, layout QuoteLayout) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		})

	if layout == LayoutFull {
		builder = builder.
			WithOrientation(orientation.Horizontal).
			WithMaxGridSize(fullGridSize)
	} else {
		builder = builder.
			WithOrientation(orientation.Vertical).
			WithMaxGridSize(clientGridSize)
	}

	m := maroto.New(builder.Build())

	addQuoteHeader(m, data, layout)
	addQuoteClientBlock(m, data, layout)
	if layout == LayoutFull {
		addFullItemsTable(m, data)
	} else {
		addClientItemsTable(m, data)
	}
	addQuoteTotals(m, data, layout)
	addQuoteConditions(m, data, layout)
	addQuoteBankAndContact(m, data, layout)
	if layout == LayoutClient {
		addQuoteFooter(m, data)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds company name, "COTIZACIÓN" title and folio.
func addQuoteHeader(m core.Maroto, data *QuoteExportData, layout QuoteLayout) {
	grid := gridSize(layout)
	half := grid / 2

	m.AddRows(
		row.New(10).Add(
			col.New(half).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: brandOrange,
				}),
			),
			col.New(grid-half).Add(
				text.New("COTIZACIÓN", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(half).Add(
				text.New(data.CompanyTagline, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(grid-half).Add(
				text.New(fmt.Sprintf("Folio: %s", data.Folio), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addQuoteClientBlock adds the client data block under the header.
func addQuoteClientBlock(m core.Maroto, data *QuoteExportData, layout QuoteLayout) {
	grid := gridSize(layout)
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightLabelStyle := labelStyle
	rightLabelStyle.Align = align.Right
	rightValueStyle := valueStyle
	rightValueStyle.Align = align.Right

	third := grid / 3

	m.AddRows(
		row.New(6).Add(
			col.New(grid-third).Add(text.New("CLIENTE", labelStyle)),
			col.New(third).Add(text.New("DATOS", rightLabelStyle)),
		),
	)

	pairs := []struct{ left, right string }{
		{fmtField("NOMBRE", data.ClientName), fmtField("FECHA", data.Date)},
		{fmtField("RFC", data.ClientRFC), fmtField("MONEDA", string(data.Currency))},
		{fmtField("CONTACTO", data.ClientContact), ""},
		{fmtField("CORREO", data.ClientEmail), ""},
		{fmtField("TELÉFONO", data.ClientPhone), ""},
	}
	for _, p := range pairs {
		if p.left == "" && p.right == "" {
			continue
		}
		m.AddRows(
			row.New(6).Add(
				col.New(grid-third).Add(text.New(p.left, valueStyle)),
				col.New(third).Add(text.New(p.right, rightValueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addFullItemsTable renders every column, including cost and margin.
func addFullItemsTable(m core.Maroto, data *QuoteExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: brandOrange}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("ID", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("CÓDIGO", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("DESCRIPCIÓN", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UNIDAD", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("PRECIO COMPRA", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("CANTIDAD", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("MONEDA", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("MARGEN", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("PRECIO", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("IMPORTE", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("DESC.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("TOTAL", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.Items {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.ID), bodyText)),
			col.New(2).Add(text.New(item.Code, bodyText)),
			col.New(4).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(item.Unit, bodyText)),
			col.New(2).Add(text.New(FormatMoney(TruncateCents(item.PurchasePrice), item.Currency), bodyTextRight)),
			col.New(1).Add(text.New(FormatQty(item.Qty), bodyTextRight)),
			col.New(1).Add(text.New(string(item.Currency), bodyText)),
			col.New(1).Add(text.New(FormatPercent(item.MarginPercent), bodyText)),
			col.New(2).Add(text.New(FormatMoney(item.DisplayPrice, data.Currency), bodyTextRight)),
			col.New(2).Add(text.New(FormatMoney(item.DisplayImporte, data.Currency), bodyTextRight)),
			col.New(1).Add(text.New(FormatPercent(item.DiscountPercent), bodyText)),
			col.New(2).Add(text.New(FormatMoney(item.DisplayTotal, data.Currency), bodyTextRight)),
		}

		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// addClientItemsTable renders the client-facing columns only. Amounts are
// shown in the document currency. The discount column drops out entirely
// when no line carries one.
func addClientItemsTable(m core.Maroto, data *QuoteExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: brandOrange}

	descWidth := 3
	if !data.HasDiscounts {
		descWidth = 4
	}

	headerCols := []core.Col{
		col.New(1).Add(text.New("ID", headerText)).WithStyle(&headerCell),
		col.New(descWidth).Add(text.New("DESCRIPCIÓN", headerTextLeft)).WithStyle(&headerCell),
		col.New(1).Add(text.New("UNIDAD", headerText)).WithStyle(&headerCell),
		col.New(1).Add(text.New("CANTIDAD", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("PRECIO", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("IMPORTE", headerText)).WithStyle(&headerCell),
	}
	if data.HasDiscounts {
		headerCols = append(headerCols,
			col.New(1).Add(text.New("DESC.", headerText)).WithStyle(&headerCell))
	}
	headerCols = append(headerCols,
		col.New(2).Add(text.New("TOTAL", headerText)).WithStyle(&headerCell))

	m.AddRows(row.New(8).Add(headerCols...))

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.Items {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.ID), bodyText)),
			col.New(descWidth).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(item.Unit, bodyText)),
			col.New(1).Add(text.New(FormatQty(item.Qty), bodyTextRight)),
			col.New(2).Add(text.New(FormatMoney(item.DisplayPrice, data.Currency), bodyTextRight)),
			col.New(2).Add(text.New(FormatMoney(item.DisplayImporte, data.Currency), bodyTextRight)),
		}
		if data.HasDiscounts {
			cols = append(cols,
				col.New(1).Add(text.New(FormatPercent(item.DiscountPercent), bodyText)))
		}
		cols = append(cols,
			col.New(2).Add(text.New(FormatMoney(item.DisplayTotal, data.Currency), bodyTextRight)))

		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// addQuoteTotals adds the amount-in-words block on the left and the totals
// column on the right.
func addQuoteTotals(m core.Maroto, data *QuoteExportData, layout QuoteLayout) {
	grid := gridSize(layout)
	valueWidth := grid / 4
	labelWidth := grid - valueWidth

	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	if data.Observations != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(grid).Add(text.New(fmt.Sprintf("Observaciones: %s", data.Observations), props.Text{
					Size:  8,
					Align: align.Left,
				})),
			),
		)
	}

	totalRows := []struct {
		label string
		value float64
	}{
		{"Importe Total", data.ImporteTotal},
		{"Descuento", data.Discount},
		{"Subtotal", data.Subtotal},
		{"IVA (16%)", data.IVA},
	}
	for _, tr := range totalRows {
		if tr.label == "Descuento" && !data.HasDiscounts {
			continue
		}
		m.AddRows(
			row.New(7).Add(
				col.New(labelWidth).Add(text.New(tr.label, labelStyle)).WithStyle(summaryCell),
				col.New(valueWidth).Add(text.New(FormatMoney(tr.value, data.Currency), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandCell := &props.Cell{BackgroundColor: brandOrange}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	m.AddRows(
		row.New(8).Add(
			col.New(labelWidth).Add(text.New("Total a Pagar", grandStyle)).WithStyle(grandCell),
			col.New(valueWidth).Add(text.New(FormatMoney(data.GrandTotal, data.Currency), grandStyle)).WithStyle(grandCell),
		),
	)

	if data.AmountInWords != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(grid).Add(
					text.New(fmt.Sprintf("Cantidad en letras: %s", data.AmountInWords), props.Text{
						Size:  8,
						Style: fontstyle.BoldItalic,
						Align: align.Left,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}

// quoteConditions are the commercial terms printed on every quote.
func quoteConditions(currency Currency) []string {
	priceLine := "Precios en pesos mexicanos."
	if currency == CurrencyUSD {
		priceLine = "Precios en dólares estadounidenses."
	}
	return []string{
		"Todos los pedidos requieren un 70% de anticipo y el saldo contra entrega.",
		priceLine,
		"Pagos vía depósito, transferencia, tarjeta o efectivo.",
		"Total a Pagar incluye IVA. Precios sujetos a cambios sin previo aviso.",
		"Incluir número de cotización en la referencia del pago y enviar comprobante a facturacion@unidadc.com",
		"No se admiten cancelaciones una vez autorizada la cotización.",
		"Garantía no cubre mal uso, descargas eléctricas o instalación ajena.",
		"Entrega sujeta a disponibilidad.",
		"Unidad C no se hace responsable por retrasos ajenos.",
	}
}

// addQuoteConditions adds the commercial conditions list.
func addQuoteConditions(m core.Maroto, data *QuoteExportData, layout QuoteLayout) {
	grid := gridSize(layout)

	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 33, Green: 37, Blue: 41},
	}
	itemStyle := props.Text{
		Size:  7,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(grid).Add(text.New("Condiciones Comerciales", sectionLabel)),
		),
	)
	for _, cond := range quoteConditions(data.Currency) {
		m.AddRows(
			row.New(4).Add(
				col.New(grid).Add(text.New("• "+cond, itemStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addQuoteBankAndContact adds bank details and issuer contact side by side.
func addQuoteBankAndContact(m core.Maroto, data *QuoteExportData, layout QuoteLayout) {
	grid := gridSize(layout)
	half := grid / 2

	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 33, Green: 37, Blue: 41},
	}
	lineStyle := props.Text{
		Size:  7,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(half).Add(text.New("Datos Bancarios", sectionLabel)),
			col.New(grid-half).Add(text.New("Contacto", sectionLabel)),
		),
	)

	bankLines := []string{
		"Banco: Banorte",
		"Cuenta (MXN): 0445446593",
		"CLABE: 072910004454465933",
	}
	contactLines := []string{
		"CRISTIAN MIGUEL COCOM VÁZQUEZ",
		"COVC-790525-J16",
		"C. P. 97249. Mérida, Yucatán, México",
		"contacto@unidadc.com | (566) 000 0199",
	}

	for i := 0; i < len(contactLines); i++ {
		bank := ""
		if i < len(bankLines) {
			bank = bankLines[i]
		}
		m.AddRows(
			row.New(5).Add(
				col.New(half).Add(text.New(bank, lineStyle)),
				col.New(grid-half).Add(text.New(contactLines[i], lineStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addQuoteFooter adds the centered tagline at the bottom of the client sheet.
func addQuoteFooter(m core.Maroto, data *QuoteExportData) {
	footerStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(6).Add(
			col.New(clientGridSize).Add(text.New(data.CompanyTagline, footerStyle)),
		),
	)
	m.AddRows(
		row.New(5).Add(
			col.New(clientGridSize).Add(text.New(data.CompanyWebsite, footerStyle)),
		),
	)
}

func gridSize(layout QuoteLayout) int {
	if layout == LayoutFull {
		return fullGridSize
	}
	return clientGridSize
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
