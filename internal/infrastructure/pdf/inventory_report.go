// Package pdf genera el reporte de inventario en PDF (export del dashboard).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del panel  │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Activos | Stock bajo | Valor total        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Stock | Precio | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL INVENTARIO                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/inventory-panel/internal/application/analytics"
	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// InventoryReportGenerator genera el reporte de inventario usando Maroto v2.
type InventoryReportGenerator struct {
	printer *message.Printer
}

// NewInventoryReportGenerator construye el generador.
func NewInventoryReportGenerator() *InventoryReportGenerator {
	return &InventoryReportGenerator{printer: message.NewPrinter(language.English)}
}

// Generate genera el PDF del inventario actual y devuelve sus bytes.
// Los productos llegan en el orden del backend y así se listan.
func (g *InventoryReportGenerator) Generate(
	_ context.Context,
	appName string,
	products []entity.Product,
	summary analytics.Summary,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.productRows(products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del panel (izq) y fecha de generación (der).
func (g *InventoryReportGenerator) headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRow: los cuatro totales del dashboard en una fila.
func (g *InventoryReportGenerator) summaryRow(s analytics.Summary) core.Row {
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 5}),
		)
	}
	lowColor := colorPrimary
	if s.LowStockCount > 0 {
		lowColor = colorAlert
	}
	return row.New(12).Add(
		cell("Productos", g.printer.Sprintf("%d", s.TotalProducts), colorPrimary),
		cell("Activos", g.printer.Sprintf("%d", s.ActiveProducts), colorPrimary),
		cell("Stock bajo", g.printer.Sprintf("%d", s.LowStockCount), lowColor),
		cell("Valor total", g.money(s.TotalValue.InexactFloat64()), colorPrimary),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Precio", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// productRows: una fila por producto; el stock bajo se pinta en rojo.
func (g *InventoryReportGenerator) productRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockColor := colorGray
		if p.LowStock() {
			stockColor = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(
				g.printer.Sprintf("%d", p.InStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: stockColor},
			)),
			col.New(1).Add(text.New(
				g.money(p.Price.InexactFloat64()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				g.money(p.Value().InexactFloat64()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: valor total del inventario, alineado a la derecha.
func (g *InventoryReportGenerator) totalRow(s analytics.Summary) core.Row {
	return row.New(9).Add(
		col.New(9).Add(text.New("TOTAL DEL INVENTARIO", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(g.money(s.TotalValue.InexactFloat64()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// money formatea un monto con separador de miles y dos decimales.
func (g *InventoryReportGenerator) money(v float64) string {
	return g.printer.Sprintf("$%.2f", v)
}
