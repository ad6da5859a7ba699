// Package xlsx escribe las exportaciones como libros de Excel con excelize.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/export"
)

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
	dateLayout   = "2006-01-02 15:04"
)

// Writer implementa export.WorkbookWriter. Cada tabla es una hoja con encabezado fijo.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

var _ export.WorkbookWriter = (*Writer)(nil)

// Write arma el libro y lo escribe en out.
func (wr *Writer) Write(ctx context.Context, out io.Writer, tables ...export.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}

	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := sheetName(t.Sheet, i)
		if i == 0 {
			err = f.SetSheetName(defaultSheet, name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return fmt.Errorf("xlsx: hoja %s: %w", name, err)
		}
		if err := writeTable(f, name, t, header); err != nil {
			return fmt.Errorf("xlsx: hoja %s: %w", name, err)
		}
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t export.Table, headerStyle int) error {
	if len(t.Header) == 0 {
		return nil
	}
	head := make([]any, len(t.Header))
	for i, h := range t.Header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := cells(row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// cells convierte fechas a texto legible; el resto se escribe tal cual.
func cells(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case time.Time:
			if x.IsZero() {
				out[i] = ""
			} else {
				out[i] = x.Format(dateLayout)
			}
		default:
			out[i] = v
		}
	}
	return out
}

func sheetName(name string, i int) string {
	if name == "" {
		name = fmt.Sprintf("Hoja%d", i+1)
	}
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}
