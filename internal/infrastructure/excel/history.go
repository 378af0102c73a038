// Package excel exporta el historial de motores a XLSX con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// SheetName hoja con el historial.
const SheetName = "Historial"

var headers = []string{
	"N° Motor", "Cliente", "Celular", "Marca", "Vehículo", "Placa",
	"Fecha entrada", "Fecha salida", "Estado", "Mecánico",
	"Subtotal trabajos", "Subtotal ítems", "IVA", "Total",
}

// HistoryExporter implementa taller.HistoryExporter.
type HistoryExporter struct{}

// NewHistoryExporter crea el exportador.
func NewHistoryExporter() *HistoryExporter { return &HistoryExporter{} }

// ExportHistory escribe una fila por motor con sus totales y devuelve el XLSX.
func (e *HistoryExporter) ExportHistory(rows []taller.HistoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, headerStyle)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, r := range rows {
		m := r.Motor
		salida := ""
		if m.FechaSalida != nil {
			salida = m.FechaSalida.Format("2006-01-02")
		}
		values := []any{
			m.NumeroSerie, m.Cliente, m.Celular, m.Marca, m.Vehiculo, m.Placa,
			m.FechaEntrada.Format("2006-01-02"), salida, r.Estado, m.MecanicoNombre,
			r.Resumen.SubtotalTrabajos.Round(0).InexactFloat64(),
			r.Resumen.SubtotalItems.Round(0).InexactFloat64(),
			r.Resumen.IVA.Round(0).InexactFloat64(),
			r.Resumen.Total.Round(0).InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(len(headers)-3, 2)
		last, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		_ = f.SetCellStyle(SheetName, first, last, moneyStyle)
	}
	_ = f.SetColWidth(SheetName, "A", "N", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
