// Package pdf genera el PDF del reporte de ganancias por socio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Período + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Pedidos / Ingresos / Envío / Comisiones / ...     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Socio | Ganancia | Costo | Total | Gastos | Neto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: nota sobre el reparto                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.EarningsPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	business string
	amounts  *money.Formatter
	now      func() time.Time
}

// NewMarotoPDFGenerator construye el generador. business es el nombre que encabeza el reporte.
func NewMarotoPDFGenerator(business string, formatter *money.Formatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{business: business, amounts: formatter, now: time.Now}
}

// GenerateEarningsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateEarningsPDF(_ context.Context, rep *dto.EarningsReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ganancias", true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range g.summaryRows(rep) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.ownerRows(rep.Owners) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y período + emisión (der).
func (g *MarotoPDFGenerator) headerRow(rep *dto.EarningsReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ganancias por socio", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rep.From+" a "+rep.To, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRows: totales del negocio en dos columnas etiqueta/valor.
func (g *MarotoPDFGenerator) summaryRows(rep *dto.EarningsReportResponse) []core.Row {
	pairs := []struct{ label, value string }{
		{"Pedidos", strconv.Itoa(rep.OrdersCount)},
		{"Ingresos (total cobrado)", g.amounts.WithCurrency(rep.Revenue)},
		{"Subtotal de productos", g.amounts.WithCurrency(rep.Subtotal)},
		{"Envío", g.amounts.WithCurrency(rep.ShippingCost)},
		{"Comisiones de pago", g.amounts.WithCurrency(rep.PaymentFees)},
		{"Descuentos", g.amounts.WithCurrency(rep.Discounts)},
		{"Ganancia neta", g.amounts.WithCurrency(rep.NetProfit)},
		{"Gastos", g.amounts.WithCurrency(rep.TotalExpenses)},
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("RESUMEN DEL PERÍODO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
	}
	for i := 0; i < len(pairs); i += 2 {
		r := row.New(6)
		for _, p := range pairs[i:min(i+2, len(pairs))] {
			r.Add(
				col.New(3).Add(text.New(p.label+":", props.Text{Size: 8, Color: colorGray, Top: 1})),
				col.New(3).Add(text.New(p.value, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 3})),
			)
		}
		rows = append(rows, r)
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de socios.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Socio", 2, align.Left),
		h("Unid.", 1, align.Center),
		h("Ganancia", 2, align.Right),
		h("Costo prod.", 2, align.Right),
		h("Total", 2, align.Right),
		h("Gastos", 1, align.Right),
		h("Neto", 2, align.Right),
	)
}

// ownerRows: una fila por socio.
func (g *MarotoPDFGenerator) ownerRows(owners []dto.OwnerEarningsDTO) []core.Row {
	result := make([]core.Row, 0, len(owners))
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	for _, o := range owners {
		var netColor *props.Color
		if o.NetAfterExpenses.IsNegative() {
			netColor = colorNegative
		}
		result = append(result, row.New(7).Add(
			cell(o.Owner, 2, align.Left, nil),
			cell(strconv.Itoa(o.ItemsSold), 1, align.Center, nil),
			cell(g.amounts.Amount(o.NetProfit), 2, align.Right, nil),
			cell(g.amounts.Amount(o.ProductCost), 2, align.Right, nil),
			cell(g.amounts.Amount(o.TotalEarnings), 2, align.Right, nil),
			cell(g.amounts.Amount(o.Expenses), 1, align.Right, nil),
			cell(g.amounts.Amount(o.NetAfterExpenses), 2, align.Right, netColor),
		))
	}
	return result
}

// footerRow: cómo se obtienen las cifras.
func footerRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(
			"Cada socio recibe la ganancia bruta de sus productos menos su parte de envío, comisiones y "+
				"descuentos (proporcional a su ingreso en cada pedido). Total = ganancia + reembolso del costo "+
				"de sus productos. Neto = ganancia - gastos asignados.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
