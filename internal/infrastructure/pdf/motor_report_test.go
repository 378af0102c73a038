package pdf_test

import (
	"bytes"
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/application/taller"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/photo"
)

func report(t *testing.T, iva bool) taller.MotorReport {
	t.Helper()
	agg := invoice.NewAggregator(invoice.DefaultCatalog(), invoice.DefaultTaxRate)
	works := []entity.WorkEntry{
		{Descripcion: "Rectificar cigüeñal", Estado: entity.TrabajoFinalizado, Precio: decimal.NewNullDecimal(decimal.NewFromInt(50000))},
		{Descripcion: "Sin precio", Estado: entity.TrabajoEnProceso},
	}
	parts := []entity.PartEntry{{Cantidad: 2, Descripcion: "Anillos", Valor: decimal.NewNullDecimal(decimal.NewFromInt(10000))}}
	checklist := []entity.ChecklistEntry{
		{Seccion: "bielas", Componente: "Pistones", Presente: true},
		{Seccion: "bielas", Observaciones: "leve desgaste"},
	}
	return taller.MotorReport{
		Taller: "Rectificadora Santofimio",
		Motor: entity.Motor{
			ID: 1, NumeroSerie: "00001", Cliente: "Juan Pérez", Marca: "Chevrolet", Vehiculo: "Luv",
			FechaEntrada: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Estado: entity.MotorEnProceso,
			MedidaBloque: "0.50", MedidaBancada: "0.25", MedidaBiela: "Estandar", IncluirIVA: iva,
		},
		Trabajos:   works,
		Items:      parts,
		Checklist:  agg.BuildChecklistView(checklist),
		Resumen:    agg.ComputeSummary(works, parts, iva, invoice.ConfirmedOnly),
		GeneradoEn: time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderMotorReport_GeneraPDF(t *testing.T) {
	for _, iva := range []bool{false, true} {
		out, err := pdf.NewMotorReportGenerator().RenderMotorReport(context.Background(), report(t, iva))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "iva=%v", iva)
	}
}

func TestRenderMotorReport_ConFoto(t *testing.T) {
	img := imaging.New(64, 48, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))

	r := report(t, true)
	r.Motor.FotoMotor = photo.EncodeDataURI("image/jpeg", buf.Bytes())

	out, err := pdf.NewMotorReportGenerator().RenderMotorReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderMotorReport_FotoInvalidaSeOmite(t *testing.T) {
	r := report(t, false)
	r.Motor.FotoMotor = "no es data uri"

	out, err := pdf.NewMotorReportGenerator().RenderMotorReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderMotorReport_ConLogo(t *testing.T) {
	logo := imaging.New(40, 40, color.NRGBA{R: 0, G: 70, B: 127, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, logo, imaging.PNG))

	gen := pdf.NewMotorReportGenerator(pdf.WithLogo(buf.Bytes(), true))
	out, err := gen.RenderMotorReport(context.Background(), report(t, false))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
