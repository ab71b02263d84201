package export

import (
	"io"

	"github.com/enjaz/bizledger/internal/application/report"
)

var _ report.Exporter = Adapter{}

// Adapter expone WriteCSV/WriteXLSX como report.Exporter.
type Adapter struct{}

// WriteCSV implementa report.Exporter.
func (Adapter) WriteCSV(w io.Writer, headers []string, rows []report.Row) error {
	return WriteCSVTable(w, headers, toRecords(rows))
}

// WriteXLSX implementa report.Exporter.
func (Adapter) WriteXLSX(w io.Writer, sheet string, headers []string, rows []report.Row) error {
	return WriteXLSXTable(w, sheet, headers, toRecords(rows))
}

func toRecords(rows []report.Row) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		rec := make(Record, len(r))
		for j, c := range r {
			rec[j] = Field{Name: c.Name, Value: c.Value}
		}
		out[i] = rec
	}
	return out
}
