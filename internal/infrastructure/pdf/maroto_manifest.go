// Package pdf genera el albarán de un bulto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ALBARÁN DE BULTO + descripción │ Estado de stock    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Ubicación / Estado / Entrada / Salida                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Lote | Vencimiento                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTOS: Fecha | Origen | Destino                       │
//	│  FOOTER: QR con el ID del bulto                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var stockStatusLabels = map[string]string{
	"sin_movimiento":   "SIN MOVIMIENTO",
	"con_entrada":      "EN STOCK (ENTRADA)",
	"con_salida":       "DESPACHADO (SALIDA)",
	"entrada_y_salida": "ENTRADA Y SALIDA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ManifestGenerator implementa export.ManifestRenderer usando Maroto v2.
type ManifestGenerator struct {
	now func() time.Time
}

// NewManifestGenerator construye el generador.
func NewManifestGenerator() *ManifestGenerator { return &ManifestGenerator{now: time.Now} }

var _ export.ManifestRenderer = (*ManifestGenerator)(nil)

// RenderManifest genera el PDF y devuelve sus bytes.
func (g *ManifestGenerator) RenderManifest(_ context.Context, pkg *dto.PackageDetailResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Albarán de bulto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(pkg, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(pkg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CONTENIDO"))
	m.AddRows(linesHeaderRow())
	m.AddRows(lineRows(pkg.Lines)...)
	m.AddRows(totalRow(pkg.Lines))

	if len(pkg.Movements) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("MOVIMIENTOS"))
		m.AddRows(movementRows(pkg.Movements)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(pkg.ID))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar albarán: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(pkg *dto.PackageDetailResponse, at time.Time) core.Row {
	status := stockStatusLabels[pkg.StockStatus]
	if status == "" {
		status = pkg.StockStatus
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ALBARÁN DE BULTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(pkg.Description, "Sin descripción"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func infoRow(pkg *dto.PackageDetailResponse) core.Row {
	entry, exit := "-", "-"
	if pkg.Entry != nil {
		entry = pkg.Entry.Date.Format("02/01/2006") + " " + nonEmpty(pkg.Entry.UserName, pkg.Entry.UserID)
	}
	if pkg.Exit != nil {
		exit = pkg.Exit.Date.Format("02/01/2006") + " " + nonEmpty(pkg.Exit.UserName, pkg.Exit.UserID)
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Ubicación: "+nonEmpty(pkg.CurrentLocation, "-"), props.Text{Size: 9, Top: 1}),
			text.New("Estado: "+nonEmpty(pkg.StateName, "-"), props.Text{Size: 9, Top: 7}),
		),
		col.New(6).Add(
			text.New("Entrada: "+entry, props.Text{Size: 9, Top: 1}),
			text.New("Salida: "+exit, props.Text{Size: 9, Top: 7}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func linesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Lote", 3, align.Left),
		h("Vence", 2, align.Center),
	)
}

func lineRows(lines []dto.LineItemResponse) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("El bulto no tiene detalles.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		expires := "-"
		if l.ExpiresAt != nil {
			expires = l.ExpiresAt.Format("02/01/2006")
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(nonEmpty(l.ProductName, l.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(l.Lot, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(expires, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func totalRow(lines []dto.LineItemResponse) core.Row {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return row.New(8).Add(
		col.New(2).Add(text.New(fmt.Sprint(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2,
		})),
		col.New(10).Add(text.New(fmt.Sprintf("unidades en %d detalle(s)", len(lines)), props.Text{
			Size: 8, Color: colorGray, Top: 2, Left: 1,
		})),
	)
}

func movementRows(movements []dto.MovementResponse) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(mv.Date.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(mv.FromLocation, "-")+" -> "+mv.ToLocation, props.Text{Size: 8, Top: 1})),
		))
	}
	return result
}

func footerRow(packageID string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(packageID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("ID del bulto", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3, Color: colorPrimary}),
			text.New(packageID, props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
