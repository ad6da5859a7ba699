package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xlsx"
)

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	date := time.Date(2025, 5, 2, 14, 30, 0, 0, time.UTC)
	err := xlsx.NewWriter().Write(context.Background(), &buf,
		export.Table{
			Sheet:  "Entradas",
			Header: []string{"ID", "Bulto", "Usuario", "Fecha"},
			Rows:   [][]any{{"e-1", "b-1", "Ana", date}},
		},
		export.Table{
			Sheet:  "Productos",
			Header: []string{"Nombre", "Stock"},
			Rows:   [][]any{{"Guantes", 12}, {"Cinta", 0}},
		},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Entradas", "Productos"}, f.GetSheetList())

	rows, err := f.GetRows("Entradas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Bulto", "Usuario", "Fecha"}, rows[0])
	assert.Equal(t, []string{"e-1", "b-1", "Ana", "2025-05-02 14:30"}, rows[1])

	rows, err = f.GetRows("Productos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Guantes", "12"}, rows[1])
	assert.Equal(t, []string{"Cinta", "0"}, rows[2])
}

func TestWriter_LongSheetNameIsTruncated(t *testing.T) {
	var buf bytes.Buffer
	err := xlsx.NewWriter().Write(context.Background(), &buf, export.Table{
		Sheet:  "Movimientos de bultos entre ubicaciones",
		Header: []string{"ID"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	require.Len(t, f.GetSheetList(), 1)
	assert.Len(t, []rune(f.GetSheetList()[0]), 31)
}
