// Package pdf genera el reporte PDF de un motor rectificado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller              │  N° Motor + Fecha            │
//	│  CLIENTE / MECÁNICO: datos del ingreso                      │
//	│  MEDIDAS: Bloque │ Cigüeñal (Bancada, Biela)  │  Foto        │
//	│  CHECKLIST: una sección por bloque, dos columnas [X]/[ ]    │
//	│  TRABAJOS e ÍTEMS                                           │
//	│  RESUMEN: Subtotal / IVA (si aplica) / TOTAL                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/rectificadora-api/internal/application/taller"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/photo"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ taller.ReportRenderer = (*MotorReportGenerator)(nil)

// MotorReportGenerator implementa taller.ReportRenderer usando Maroto v2.
type MotorReportGenerator struct {
	logo    []byte
	logoExt extension.Type
}

// Option configura el generador.
type Option func(*MotorReportGenerator)

// WithLogo agrega el logo del taller al encabezado. Solo JPEG y PNG.
func WithLogo(data []byte, png bool) Option {
	return func(g *MotorReportGenerator) {
		g.logo = data
		g.logoExt = extension.Jpg
		if png {
			g.logoExt = extension.Png
		}
	}
}

// NewMotorReportGenerator construye el generador.
func NewMotorReportGenerator(opts ...Option) *MotorReportGenerator {
	g := &MotorReportGenerator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RenderMotorReport genera el PDF y devuelve sus bytes. Maroto pagina solo.
func (g *MotorReportGenerator) RenderMotorReport(_ context.Context, r taller.MotorReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Motor "+r.Motor.NumeroSerie, true).
		WithAuthor(r.Taller, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(r.Motor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(medidasRows(r.Motor)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, s := range r.Checklist {
		m.AddRows(checklistRows(s)...)
	}

	if len(r.Trabajos) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(trabajosRows(r.Trabajos)...)
	}
	if len(r.Items) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(itemsRows(r.Items)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRow(r.Resumen))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MotorReportGenerator) headerRow(r taller.MotorReport) core.Row {
	nameWidth := 7
	var cols []core.Col
	if len(g.logo) > 0 {
		nameWidth = 5
		cols = append(cols, col.New(2).Add(image.NewFromBytes(g.logo, g.logoExt, props.Rect{Center: true, Percent: 90})))
	}
	cols = append(cols,
		col.New(nameWidth).Add(
			text.New(r.Taller, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de rectificación", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("MOTOR N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Motor.NumeroSerie, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+r.GeneradoEn.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
	return row.New(18).Add(cols...)
}

func clienteRow(mo entity.Motor) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(mo.Cliente, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Cel: %s   |   Placa: %s", nonEmpty(mo.Celular, "—"), nonEmpty(mo.Placa, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Vehículo: %s %s", mo.Marca, nonEmpty(mo.Vehiculo, "—")),
				props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("MECÁNICO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(mo.MecanicoNombre, "—"), props.Text{Size: 10, Top: 6}),
			text.New("Tel: "+nonEmpty(mo.MecanicoTelefono, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("Entrada: "+mo.FechaEntrada.Format("02/01/2006"), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

// medidasRows: medidas a la izquierda y la foto (si hay) a la derecha.
func medidasRows(mo entity.Motor) []core.Row {
	medidas := col.New(6).Add(
		text.New("MEDIDAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New("Bloque: "+nonEmpty(mo.MedidaBloque, "—"), props.Text{Size: 9, Top: 7}),
		text.New(fmt.Sprintf("Cigüeñal (Bancada: %s, Biela: %s)",
			nonEmpty(mo.MedidaBancada, "—"), nonEmpty(mo.MedidaBiela, "—")), props.Text{Size: 9, Top: 13}),
	)
	if mo.MedidaCiguenal != "" {
		medidas.Add(text.New("Cigüeñal: "+mo.MedidaCiguenal, props.Text{Size: 9, Top: 19}))
	}

	jpeg, mime, err := photo.DecodeDataURI(mo.FotoMotor)
	if err != nil || len(jpeg) == 0 || (mime != "image/jpeg" && mime != "image/png") {
		return []core.Row{row.New(26).Add(medidas, col.New(6))}
	}
	ext := extension.Jpg
	if mime == "image/png" {
		ext = extension.Png
	}
	return []core.Row{row.New(60).Add(
		medidas,
		col.New(6).Add(image.NewFromBytes(jpeg, ext, props.Rect{Center: true, Percent: 95})),
	)}
}

// checklistRows: título, pares de componentes [X]/[ ] y observaciones de la sección.
func checklistRows(s invoice.SectionView) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(s.Titulo, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
		)),
	}
	left, right := s.Columnas[0], s.Columnas[1]
	for i := range left {
		r := row.New(5).Add(col.New(6).Add(markText(left[i])))
		if i < len(right) {
			r.Add(col.New(6).Add(markText(right[i])))
		} else {
			r.Add(col.New(6))
		}
		rows = append(rows, r)
	}
	if s.ConObservaciones && s.Observaciones != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Observaciones: "+s.Observaciones, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

func markText(m invoice.ComponentMark) core.Component {
	box := "[ ]"
	if m.Presente {
		box = "[X]"
	}
	return text.New(box+" "+m.Nombre, props.Text{Size: 8, Top: 1, Left: 2})
}

func trabajosRows(works []entity.WorkEntry) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(6).Add(text.New("Trabajo", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2})),
			col.New(3).Add(text.New("Estado", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2})),
			col.New(3).Add(text.New("Precio", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})),
		),
	}
	for _, w := range works {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(w.Descripcion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(w.Estado, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(moneyOrDash(w.Precio.Valid, w.Precio.Decimal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func itemsRows(parts []entity.PartEntry) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(1).Add(text.New("Cant.", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 2})),
			col.New(7).Add(text.New("Ítem", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2})),
			col.New(4).Add(text.New("Valor unit.", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})),
		),
	}
	for _, p := range parts {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(p.Cantidad), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(p.Descripcion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(moneyOrDash(p.Valor.Valid, p.Valor.Decimal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// resumenRow: bloque de totales alineado a la derecha. La fila de IVA solo aparece si aplica.
func resumenRow(s invoice.Summary) core.Row {
	label := func(t string, top float64) core.Component {
		return text.New(t, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(t string, top float64) core.Component {
		return text.New(t, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := col.New(3).Add(
		label("Trabajos:", 0),
		label("Ítems:", 5),
		label("Subtotal:", 10),
	)
	values := col.New(3).Add(
		value(invoice.FormatMoney(s.SubtotalTrabajos), 0),
		value(invoice.FormatMoney(s.SubtotalItems), 5),
		value(invoice.FormatMoney(s.Subtotal), 10),
	)
	top := 15.0
	if s.IncluirIVA {
		labels.Add(label(fmt.Sprintf("IVA (%s%%):", s.TasaIVA.Shift(2).String()), top))
		values.Add(value(invoice.FormatMoney(s.IVA), top))
		top += 5
	}
	labels.Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top}))
	values.Add(text.New(invoice.FormatMoney(s.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top}))

	return row.New(top+8).Add(col.New(6), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
