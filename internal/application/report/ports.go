// Package report exporta listados (CSV, XLSX) e imprime facturas y reportes
// (PDF). Todo requiere la capacidad canViewReports.
package report

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Cell valor ya formateado de una columna.
type Cell struct {
	Name  string
	Value string
}

// Row fila ordenada; la primera fila define las columnas.
type Row []Cell

// Exporter escribe filas en un formato tabular bajo la cabecera headers,
// aunque no haya filas.
type Exporter interface {
	WriteCSV(w io.Writer, headers []string, rows []Row) error
	WriteXLSX(w io.Writer, sheet string, headers []string, rows []Row) error
}

// Document reporte con título para imprimir.
type Document struct {
	Title   string
	Headers []string
	Rows    [][]string
	Totals  []Total
}

// Total línea del pie de un reporte.
type Total struct {
	Label string
	Value decimal.Decimal
}

// Printer genera PDFs.
type Printer interface {
	PrintInvoice(ctx context.Context, inv entity.Invoice, company entity.CompanySettings) ([]byte, error)
	PrintReport(ctx context.Context, doc Document, company entity.CompanySettings) ([]byte, error)
}
