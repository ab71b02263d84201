package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX escribe los registros en una hoja llamada sheet, cabecera en la
// fila 1 con estilo negrita.
func WriteXLSX(w io.Writer, sheet string, records []Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	return WriteXLSXTable(w, sheet, Headers(records), records)
}

// WriteXLSXTable como WriteXLSX con cabecera fija; sin registros la hoja sólo
// tiene la cabecera.
func WriteXLSXTable(w io.Writer, sheet string, headers []string, records []Record) error {
	if len(headers) == 0 {
		return ErrNoRecords
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("export: nombrar hoja: %w", err)
		}
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("export: cabecera: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: estilo: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("export: estilo: %w", err)
	}

	for r, rec := range records {
		for c, field := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, field.Value); err != nil {
				return fmt.Errorf("export: fila %d: %w", r+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return nil
}

// ReadXLSX lee la primera hoja de un libro escrito con WriteXLSX.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("export: abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("export: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("export: leer filas: %w", err)
	}
	return fromRows(rows), nil
}
