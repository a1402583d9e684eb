// Package pdf genera los documentos del back-office con Maroto v2.
//
// Informe de ocupación (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidad + Alojamiento    │  Fecha de emisión         │
//	│  RESUMEN: Capacidad / Ocupadas / Libres                      │
//	│  TABLA: Habitación | Camas | Ocupadas | Libres | Estado      │
//	│  TABLA: Ocupante | Documento | Cargo | Estado                │
//	└─────────────────────────────────────────────────────────────┘
//
// Comprobante de retiros (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidad + Empleado       │  Fecha de emisión         │
//	│  TABLA: Código | Producto | Cant. | Fecha | Estado           │
//	│  TOTAL PENDIENTE + QR de verificación + firmas               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// RenderOccupancy genera el informe de ocupación de un alojamiento.
func (g *MarotoReportGenerator) RenderOccupancy(_ context.Context, data *dto.OccupancyReport) ([]byte, error) {
	occ := data.Occupancy
	m := newDocument("Informe de ocupación", data.UnitName)

	m.AddRows(headerRow(data.UnitName, "INFORME DE OCUPACIÓN", occ.Name, data.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(occ))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		headerCell{"Habitación", 4, align.Left},
		headerCell{"Camas", 2, align.Center},
		headerCell{"Ocupadas", 2, align.Center},
		headerCell{"Libres", 2, align.Center},
		headerCell{"Estado", 2, align.Center},
	))
	for _, r := range occ.Rooms {
		status := "Activa"
		if !r.Active {
			status = "Inactiva"
		}
		m.AddRows(row.New(6).Add(
			cell(r.Name, 4, align.Left),
			cell(strconv.Itoa(r.BedCount), 2, align.Center),
			cell(strconv.Itoa(r.Occupied), 2, align.Center),
			cell(strconv.Itoa(r.Free), 2, align.Center),
			cell(status, 2, align.Center),
		))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(tableHeaderRow(
		headerCell{"Ocupante", 5, align.Left},
		headerCell{"Documento", 3, align.Left},
		headerCell{"Cargo", 2, align.Left},
		headerCell{"Estado", 2, align.Center},
	))
	for _, e := range data.Occupants {
		m.AddRows(row.New(6).Add(
			cell(e.Name, 5, align.Left),
			cell(e.Document, 3, align.Left),
			cell(nonEmpty(e.JobTitle, "-"), 2, align.Left),
			cell(e.Status, 2, align.Center),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de ocupación: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderWithdrawalReceipt genera el comprobante de retiros de un empleado.
func (g *MarotoReportGenerator) RenderWithdrawalReceipt(_ context.Context, data *dto.WithdrawalReceipt) ([]byte, error) {
	emp := data.Employee
	m := newDocument("Comprobante de retiros", data.UnitName)

	m.AddRows(headerRow(data.UnitName, "COMPROBANTE DE RETIROS", emp.Name+" - "+emp.Document, data.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(
		headerCell{"Código", 2, align.Left},
		headerCell{"Producto", 4, align.Left},
		headerCell{"Cant.", 2, align.Right},
		headerCell{"Fecha", 2, align.Center},
		headerCell{"Estado", 2, align.Center},
	))
	for _, l := range data.Lines {
		m.AddRows(row.New(6).Add(
			cell(l.ProductCode, 2, align.Left),
			cell(l.ProductName, 4, align.Left),
			cell(l.Quantity.String()+" "+l.UnitMeasure, 2, align.Right),
			cell(l.MovementDate.Format("02/01/2006"), 2, align.Center),
			cell(l.Status, 2, align.Center),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(8),
		col.New(4).Add(text.New("Unidades pendientes: "+data.Outstanding.String(), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	))

	m.AddRows(line.NewRow(6))
	verify := fmt.Sprintf("employee=%s;unit=%s;issued=%s", emp.ID, emp.UnitID, data.GeneratedAt.UTC().Format("20060102T150405Z"))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(verify, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Declaro haber recibido los productos listados y me comprometo a devolver los pendientes.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Firma del empleado: ______________________________", props.Text{Size: 9, Top: 20, Left: 3}),
			text.New("Firma del almacenista: ___________________________", props.Text{Size: 9, Top: 30, Left: 3}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(unitName, title, subject, issued string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(unitName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subject, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issued, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(occ dto.OccupancyResponse) core.Row {
	freeColor := colorGray
	if occ.OverCapacity {
		freeColor = colorAlert
	}
	metric := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: c, Top: 6}),
		)
	}
	rows := []core.Col{
		metric("Capacidad", strconv.Itoa(occ.Capacity), colorPrimary),
		metric("Ocupadas", strconv.Itoa(occ.Occupied), colorPrimary),
		metric("Libres", strconv.Itoa(occ.Free), freeColor),
	}
	return row.New(16).Add(rows...)
}

type headerCell struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cells ...headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
