package taller

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

// SummaryUseCase resumen financiero de un motor.
type SummaryUseCase struct {
	repos   Repos
	fetcher *MotorFetcher
	agg     *invoice.Aggregator
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(repos Repos, fetcher *MotorFetcher, agg *invoice.Aggregator) *SummaryUseCase {
	return &SummaryUseCase{repos: repos, fetcher: fetcher, agg: agg}
}

// Get calcula el resumen con los registros confirmados (base "confirmado").
func (uc *SummaryUseCase) Get(ctx context.Context, motorID int64) (*dto.SummaryResponse, error) {
	agg, err := loadAggregate(ctx, uc.fetcher, uc.repos, motorID)
	if err != nil {
		return nil, err
	}
	out := toSummaryResponse(uc.agg.ComputeSummary(agg.works, agg.parts, agg.motor.IncluirIVA, invoice.ConfirmedOnly))
	return &out, nil
}

// Preview suma a los registros confirmados los pendientes enviados por el cliente,
// sin guardarlos. El resultado es "provisional" si hay al menos uno pendiente.
func (uc *SummaryUseCase) Preview(ctx context.Context, motorID int64, in dto.PreviewSummaryRequest) (*dto.SummaryResponse, error) {
	agg, err := loadAggregate(ctx, uc.fetcher, uc.repos, motorID)
	if err != nil {
		return nil, err
	}
	works := append([]entity.WorkEntry{}, agg.works...)
	for _, p := range in.Trabajos {
		works = append(works, entity.WorkEntry{
			MotorID:      motorID,
			Descripcion:  p.Descripcion,
			Precio:       p.Precio.NullDecimal,
			Confirmacion: entity.Speculative,
		})
	}
	parts := append([]entity.PartEntry{}, agg.parts...)
	for _, p := range in.Items {
		parts = append(parts, entity.PartEntry{
			MotorID:      motorID,
			Cantidad:     p.Cantidad,
			Descripcion:  p.Descripcion,
			Valor:        p.Valor.NullDecimal,
			Confirmacion: entity.Speculative,
		})
	}
	iva := agg.motor.IncluirIVA
	if in.IncluirIVA != nil {
		iva = *in.IncluirIVA
	}
	out := toSummaryResponse(uc.agg.ComputeSummary(works, parts, iva, invoice.IncludeSpeculative))
	return &out, nil
}
