// Package export escribe listados en CSV y XLSX.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRecords no hay filas que exportar.
var ErrNoRecords = errors.New("export: no hay registros")

const bom = "\ufeff"

// Field par nombre/valor ya formateado.
type Field struct {
	Name  string
	Value string
}

// Record fila ordenada; el orden de los campos define el de las columnas.
type Record []Field

// Headers nombres de columna tomados del primer registro.
func Headers(records []Record) []string {
	if len(records) == 0 {
		return nil
	}
	out := make([]string, len(records[0]))
	for i, f := range records[0] {
		out[i] = f.Name
	}
	return out
}

// WriteCSV escribe BOM UTF-8, la cabecera con los nombres de campo del primer
// registro y una línea por registro con todos los valores entre comillas.
// Las comillas internas se duplican.
func WriteCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	return WriteCSVTable(w, Headers(records), records)
}

// WriteCSVTable como WriteCSV con cabecera fija; sin registros escribe sólo
// BOM y cabecera.
func WriteCSVTable(w io.Writer, headers []string, records []Record) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(strings.Join(headers, ","))
	for _, r := range records {
		bw.WriteByte('\n')
		for i, f := range r {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f.Value, `"`, `""`))
			bw.WriteByte('"')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: escribir csv: %w", err)
	}
	return nil
}

// ReadCSV lee lo que produce WriteCSV (con o sin BOM). Los valores entre
// comillas se conservan byte a byte, incluidos \r y \r\n; fuera de comillas
// \r\n también se acepta como fin de línea.
func ReadCSV(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: leer csv: %w", err)
	}
	rows, err := parseCSV(strings.TrimPrefix(string(raw), bom))
	if err != nil {
		return nil, fmt.Errorf("export: csv inválido: %w", err)
	}
	return fromRows(rows), nil
}

func parseCSV(data string) ([][]string, error) {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
		pending  bool
		line     = 1
	)
	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inQuotes {
			switch {
			case c == '"' && i+1 < len(data) && data[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				if c == '\n' {
					line++
				}
				field.WriteByte(c)
			}
			continue
		}
		switch c {
		case '"':
			if field.Len() > 0 {
				return nil, fmt.Errorf("línea %d: comilla fuera de lugar", line)
			}
			inQuotes, pending = true, true
		case ',':
			endField()
			pending = true
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			field.WriteByte(c)
			pending = true
		case '\n':
			endField()
			rows = append(rows, row)
			row, pending = nil, false
			line++
		default:
			field.WriteByte(c)
			pending = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("línea %d: comillas sin cerrar", line)
	}
	if pending {
		endField()
		rows = append(rows, row)
	}
	return rows, nil
}

func fromRows(rows [][]string) []Record {
	if len(rows) == 0 {
		return []Record{}
	}
	header := rows[0]
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, h := range header {
			rec[i] = Field{Name: h}
			if i < len(row) {
				rec[i].Value = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}
