package taller

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

// ChecklistUseCase checklist de ingreso: lectura cruda, reemplazo completo y vista normalizada.
type ChecklistUseCase struct {
	repos   Repos
	fetcher *MotorFetcher
	agg     *invoice.Aggregator
}

// NewChecklistUseCase construye el caso de uso.
func NewChecklistUseCase(repos Repos, fetcher *MotorFetcher, agg *invoice.Aggregator) *ChecklistUseCase {
	return &ChecklistUseCase{repos: repos, fetcher: fetcher, agg: agg}
}

// Get devuelve las filas guardadas del motor.
func (uc *ChecklistUseCase) Get(ctx context.Context, motorID int64) ([]dto.ChecklistItemResponse, error) {
	if _, err := uc.fetcher.Fetch(ctx, motorID); err != nil {
		return nil, err
	}
	rows, err := uc.repos.Checklist.ListByMotor(ctx, motorID)
	if err != nil {
		return nil, err
	}
	return toChecklistResponses(rows), nil
}

// Replace reemplaza el checklist completo del motor.
func (uc *ChecklistUseCase) Replace(ctx context.Context, motorID int64, in dto.ReplaceChecklistRequest) ([]dto.ChecklistItemResponse, error) {
	if _, err := modifiable(ctx, uc.fetcher, motorID); err != nil {
		return nil, err
	}
	entries := toChecklistEntries(in.Items)
	if err := validateChecklist(uc.agg.Catalog(), entries); err != nil {
		return nil, err
	}
	if err := uc.repos.Checklist.Replace(ctx, motorID, entries); err != nil {
		return nil, fmt.Errorf("reemplazar checklist: %w", err)
	}
	return uc.Get(ctx, motorID)
}

// View devuelve el checklist normalizado contra el catálogo (una marca por componente).
func (uc *ChecklistUseCase) View(ctx context.Context, motorID int64) ([]dto.ChecklistSectionResponse, error) {
	if _, err := uc.fetcher.Fetch(ctx, motorID); err != nil {
		return nil, err
	}
	rows, err := uc.repos.Checklist.ListByMotor(ctx, motorID)
	if err != nil {
		return nil, err
	}
	return toSectionResponses(uc.agg.BuildChecklistView(rows)), nil
}

// Catalog devuelve el catálogo estático de secciones y componentes.
func (uc *ChecklistUseCase) Catalog() []dto.CatalogSectionResponse {
	sections := uc.agg.Catalog().Sections()
	out := make([]dto.CatalogSectionResponse, len(sections))
	for i, s := range sections {
		out[i] = dto.CatalogSectionResponse{
			Key:           s.Key,
			Titulo:        s.Titulo,
			Componentes:   s.Componentes,
			Observaciones: s.Observaciones,
		}
	}
	return out
}

// validateChecklist exige secciones del catálogo y componentes conocidos. Una fila
// sin componente solo es válida como observación de una sección que las admite.
// Normaliza la clave de sección a la del catálogo.
func validateChecklist(catalog invoice.Catalog, entries []entity.ChecklistEntry) error {
	for i := range entries {
		e := &entries[i]
		section, ok := catalog.Section(e.Seccion)
		if !ok {
			return fmt.Errorf("%w: sección de checklist desconocida %q", domain.ErrInvalidInput, e.Seccion)
		}
		e.Seccion = section.Key
		if strings.TrimSpace(e.Componente) == "" {
			if !section.Observaciones || strings.TrimSpace(e.Observaciones) == "" {
				return fmt.Errorf("%w: fila de %s sin componente", domain.ErrInvalidInput, section.Key)
			}
			continue
		}
		if !catalog.Contains(section.Key, e.Componente) {
			return fmt.Errorf("%w: componente %q no pertenece a %s", domain.ErrInvalidInput, e.Componente, section.Key)
		}
	}
	return nil
}
