package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/taller"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/excel"
)

func TestExportHistory_LeeLoEscrito(t *testing.T) {
	salida := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := []taller.HistoryRow{
		{
			Motor: entity.Motor{
				NumeroSerie: "00007", Cliente: "Ana Gómez", Marca: "Mazda",
				FechaEntrada: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), FechaSalida: &salida,
			},
			Estado: entity.MotorFinalizado,
			Resumen: invoice.Summary{
				SubtotalTrabajos: decimal.NewFromInt(50000),
				SubtotalItems:    decimal.NewFromInt(20000),
				IVA:              decimal.NewFromInt(13300),
				Total:            decimal.NewFromInt(83300),
			},
		},
		{Motor: entity.Motor{NumeroSerie: "00008", Cliente: "Luis"}, Estado: taller.EstadoEliminado},
	}

	data, err := excel.NewHistoryExporter().ExportHistory(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "N° Motor", got[0][0])
	assert.Equal(t, "00007", got[1][0])
	assert.Equal(t, "Ana Gómez", got[1][1])
	assert.Equal(t, "2024-03-09", got[1][7])
	assert.Equal(t, entity.MotorFinalizado, got[1][8])
	assert.Equal(t, taller.EstadoEliminado, got[2][8])

	total, err := f.GetCellValue(excel.SheetName, "N2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "83300", total)
}

func TestExportHistory_SoloEncabezado(t *testing.T) {
	data, err := excel.NewHistoryExporter().ExportHistory(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
