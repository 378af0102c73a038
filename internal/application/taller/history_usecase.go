package taller

import (
	"context"
	"fmt"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

// Estado mostrado en el historial para motores borrados.
const EstadoEliminado = "Eliminado"

// HistoryUseCase historial de motores finalizados o eliminados.
type HistoryUseCase struct {
	repos    Repos
	agg      *invoice.Aggregator
	exporter HistoryExporter
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repos Repos, agg *invoice.Aggregator, exporter HistoryExporter) *HistoryUseCase {
	return &HistoryUseCase{repos: repos, agg: agg, exporter: exporter}
}

// List devuelve una página del historial con el total confirmado de cada motor.
func (uc *HistoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.HistoryEntryResponse, error) {
	page.DefaultPage()
	rows, err := uc.rows(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntryResponse, len(rows))
	for i, r := range rows {
		motor := toMotorResponse(&r.Motor)
		motor.FotoMotor = ""
		out[i] = dto.HistoryEntryResponse{Motor: motor, Estado: r.Estado, Total: r.Resumen.Total}
	}
	return out, nil
}

// ExportXLSX genera la hoja de cálculo con todo el historial.
func (uc *HistoryUseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	rows, err := uc.rows(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.ExportHistory(rows)
	if err != nil {
		return nil, fmt.Errorf("exportar historial: %w", err)
	}
	return data, nil
}

func (uc *HistoryUseCase) rows(ctx context.Context, limit, offset int) ([]HistoryRow, error) {
	motors, err := uc.repos.Motors.History(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	rows := make([]HistoryRow, 0, len(motors))
	for _, m := range motors {
		works, err := uc.repos.Works.ListByMotor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		parts, err := uc.repos.Parts.ListByMotor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		estado := m.Estado
		if m.Eliminado {
			estado = EstadoEliminado
		}
		rows = append(rows, HistoryRow{
			Motor:   *m,
			Estado:  estado,
			Resumen: uc.agg.ComputeSummary(works, parts, m.IncluirIVA, invoice.ConfirmedOnly),
		})
	}
	return rows, nil
}

