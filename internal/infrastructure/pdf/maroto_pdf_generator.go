// Package pdf genera las versiones imprimibles de facturas y reportes.
//
// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + dirección  │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + estado                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Artículos / Impuesto / TOTAL                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/enjaz/bizledger/internal/application/report"
	"github.com/enjaz/bizledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Printer = (*MarotoPrinter)(nil)

// MarotoPrinter implementa report.Printer con Maroto v2.
type MarotoPrinter struct {
	money *message.Printer
}

// NewMarotoPrinter construye el generador. Los montos se agrupan por miles en
// inglés (1,234.50).
func NewMarotoPrinter() *MarotoPrinter {
	return &MarotoPrinter{money: message.NewPrinter(language.English)}
}

// PrintInvoice genera el PDF de una factura y devuelve sus bytes.
func (g *MarotoPrinter) PrintInvoice(_ context.Context, inv entity.Invoice, company entity.CompanySettings) ([]byte, error) {
	m := maroto.New(docConfig("Invoice "+inv.Number, company.Name))

	m.AddRows(invoiceHeaderRow(inv, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	tax := inv.Amount.Mul(company.TaxRate).Div(decimal.NewFromInt(100))
	m.AddRows(totalsRow([]report.Total{
		{Label: "Items:", Value: decimal.NewFromInt(int64(inv.ItemCount))},
		{Label: fmt.Sprintf("Tax (%s%%):", company.TaxRate.String()), Value: tax},
		{Label: "TOTAL " + company.Currency + ":", Value: inv.Amount},
	}, g.format))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// PrintReport genera un reporte tabular con título.
func (g *MarotoPrinter) PrintReport(_ context.Context, r report.Document, company entity.CompanySettings) ([]byte, error) {
	if len(r.Headers) == 0 {
		return nil, fmt.Errorf("pdf: el reporte %q no tiene columnas", r.Title)
	}
	m := maroto.New(docConfig(r.Title, company.Name))

	m.AddRows(titleRow(r.Title, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(r.Headers))
	for _, cells := range r.Rows {
		m.AddRows(tableRow(cells, len(r.Headers)))
	}
	if len(r.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRow(r.Totals, g.format))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// FormatMoney monto con separador de miles y dos decimales.
func (g *MarotoPrinter) FormatMoney(d decimal.Decimal) string { return g.format(d) }

func (g *MarotoPrinter) format(d decimal.Decimal) string {
	return g.money.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func docConfig(title, author string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// invoiceHeaderRow: empresa (izq) y N° Factura + Fecha (der).
func invoiceHeaderRow(inv entity.Invoice, company entity.CompanySettings) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Address, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SALES INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+inv.Date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(inv entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Status: "+string(inv.Status), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func titleRow(title string, company entity.CompanySettings) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New(company.Name, props.Text{
			Size: 9, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

// tableHeaderRow reparte las 12 columnas de la grilla entre los encabezados.
func tableHeaderRow(headers []string) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(span(i, len(headers))).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(cells []string, n int) core.Row {
	cols := make([]core.Col, 0, n)
	for i := 0; i < n; i++ {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(span(i, n)).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(totals []report.Total, format func(decimal.Decimal) string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, t := range totals {
		top := float64(i * 6)
		style := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		vstyle := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if i == len(totals)-1 {
			style.Color, vstyle.Color, vstyle.Style = colorPrimary, colorPrimary, fontstyle.Bold
		}
		labels.Add(text.New(t.Label, style))
		values.Add(text.New(format(t.Value), vstyle))
	}
	return row.New(float64(len(totals)*6 + 4)).Add(col.New(6), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// span ancho de la columna i de n en la grilla de 12; la última absorbe el resto.
func span(i, n int) int {
	if n > 12 {
		n = 12
	}
	w := 12 / n
	if i == n-1 {
		return 12 - w*(n-1)
	}
	return w
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
