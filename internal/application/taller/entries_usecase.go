package taller

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// WorkUseCase trabajos (mano de obra) de un motor.
type WorkUseCase struct {
	repos   Repos
	fetcher *MotorFetcher
}

// NewWorkUseCase construye el caso de uso.
func NewWorkUseCase(repos Repos, fetcher *MotorFetcher) *WorkUseCase {
	return &WorkUseCase{repos: repos, fetcher: fetcher}
}

// List trabajos del motor en orden de creación.
func (uc *WorkUseCase) List(ctx context.Context, motorID int64) ([]dto.WorkEntryResponse, error) {
	if _, err := uc.fetcher.Fetch(ctx, motorID); err != nil {
		return nil, err
	}
	works, err := uc.repos.Works.ListByMotor(ctx, motorID)
	if err != nil {
		return nil, err
	}
	return toWorkResponses(works), nil
}

// Create agrega un trabajo. El precio se guarda aunque sea inválido (cuenta como 0).
func (uc *WorkUseCase) Create(ctx context.Context, motorID int64, in dto.CreateWorkEntryRequest) (*dto.WorkEntryResponse, error) {
	if _, err := modifiable(ctx, uc.fetcher, motorID); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Descripcion)
	if desc == "" {
		return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}
	w := &entity.WorkEntry{
		MotorID:       motorID,
		Descripcion:   desc,
		ParteAsociada: strings.TrimSpace(in.ParteAsociada),
		Precio:        in.Precio.NullDecimal,
		Estado:        entity.TrabajoEnProceso,
		Mecanico:      strings.TrimSpace(in.Mecanico),
	}
	if err := uc.repos.Works.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("crear trabajo: %w", err)
	}
	out := toWorkResponse(*w)
	return &out, nil
}

// Update modifica los campos presentes del trabajo.
func (uc *WorkUseCase) Update(ctx context.Context, id int64, in dto.UpdateWorkEntryRequest) (*dto.WorkEntryResponse, error) {
	w, err := uc.modifiableWork(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Descripcion != nil {
		d := strings.TrimSpace(*in.Descripcion)
		if d == "" {
			return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
		}
		w.Descripcion = d
	}
	setString(&w.ParteAsociada, in.ParteAsociada)
	setString(&w.Mecanico, in.Mecanico)
	if in.Precio != nil {
		w.Precio = in.Precio.NullDecimal
	}
	if in.Estado != nil {
		switch *in.Estado {
		case entity.TrabajoEnProceso, entity.TrabajoFinalizado:
			w.Estado = *in.Estado
		default:
			return nil, fmt.Errorf("%w: estado de trabajo desconocido %q", domain.ErrInvalidInput, *in.Estado)
		}
	}
	if err := uc.repos.Works.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("actualizar trabajo: %w", err)
	}
	out := toWorkResponse(*w)
	return &out, nil
}

// Finalize marca el trabajo como finalizado.
func (uc *WorkUseCase) Finalize(ctx context.Context, id int64) (*dto.WorkEntryResponse, error) {
	estado := entity.TrabajoFinalizado
	return uc.Update(ctx, id, dto.UpdateWorkEntryRequest{Estado: &estado})
}

// Delete elimina el trabajo.
func (uc *WorkUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.modifiableWork(ctx, id); err != nil {
		return err
	}
	return uc.repos.Works.Delete(ctx, id)
}

func (uc *WorkUseCase) modifiableWork(ctx context.Context, id int64) (*entity.WorkEntry, error) {
	w, err := uc.repos.Works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := modifiable(ctx, uc.fetcher, w.MotorID); err != nil {
		return nil, err
	}
	return w, nil
}

// PartUseCase ítems (repuestos) de un motor.
type PartUseCase struct {
	repos   Repos
	fetcher *MotorFetcher
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repos Repos, fetcher *MotorFetcher) *PartUseCase {
	return &PartUseCase{repos: repos, fetcher: fetcher}
}

// List ítems del motor.
func (uc *PartUseCase) List(ctx context.Context, motorID int64) ([]dto.PartEntryResponse, error) {
	if _, err := uc.fetcher.Fetch(ctx, motorID); err != nil {
		return nil, err
	}
	parts, err := uc.repos.Parts.ListByMotor(ctx, motorID)
	if err != nil {
		return nil, err
	}
	return toPartResponses(parts), nil
}

// Create agrega un ítem. La cantidad debe ser positiva.
func (uc *PartUseCase) Create(ctx context.Context, motorID int64, in dto.CreatePartEntryRequest) (*dto.PartEntryResponse, error) {
	if _, err := modifiable(ctx, uc.fetcher, motorID); err != nil {
		return nil, err
	}
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	desc := strings.TrimSpace(in.Descripcion)
	if desc == "" {
		return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}
	p := &entity.PartEntry{
		MotorID:     motorID,
		Cantidad:    in.Cantidad,
		Descripcion: desc,
		Valor:       in.Valor.NullDecimal,
	}
	if err := uc.repos.Parts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear ítem: %w", err)
	}
	out := toPartResponse(*p)
	return &out, nil
}

// Delete elimina el ítem.
func (uc *PartUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.repos.Parts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if _, err := modifiable(ctx, uc.fetcher, p.MotorID); err != nil {
		return err
	}
	return uc.repos.Parts.Delete(ctx, id)
}

// modifiable carga el motor y exige que acepte cambios en sus registros.
func modifiable(ctx context.Context, fetcher *MotorFetcher, motorID int64) (*entity.Motor, error) {
	m, err := fetcher.Fetch(ctx, motorID)
	if err != nil {
		return nil, err
	}
	if !m.CanModify() {
		return nil, fmt.Errorf("%w: el motor %s está finalizado", domain.ErrConflict, m.NumeroSerie)
	}
	return m, nil
}
