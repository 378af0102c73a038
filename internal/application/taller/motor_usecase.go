package taller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

// Repos agrupa los puertos de persistencia del taller.
type Repos struct {
	Motors    repository.MotorRepository
	Works     repository.WorkEntryRepository
	Parts     repository.PartEntryRepository
	Checklist repository.ChecklistRepository
}

// MotorUseCase ciclo de vida del motor: ingreso, consulta, edición, finalización,
// salida, borrado lógico e historial.
type MotorUseCase struct {
	repos   Repos
	tx      IntakeTxRunner
	fetcher *MotorFetcher
	photos  PhotoProcessor
	agg     *invoice.Aggregator
	now     func() time.Time
}

// NewMotorUseCase construye el caso de uso. photos puede ser nil (se guarda la foto tal cual).
func NewMotorUseCase(repos Repos, tx IntakeTxRunner, fetcher *MotorFetcher, photos PhotoProcessor, agg *invoice.Aggregator) *MotorUseCase {
	return &MotorUseCase{repos: repos, tx: tx, fetcher: fetcher, photos: photos, agg: agg, now: time.Now}
}

// WithClock fija el reloj usado para fechas de entrada y salida.
func (uc *MotorUseCase) WithClock(now func() time.Time) *MotorUseCase {
	uc.now = now
	return uc
}

// Intake registra un motor nuevo con su checklist de ingreso en una sola transacción.
func (uc *MotorUseCase) Intake(ctx context.Context, in dto.IntakeMotorRequest) (*dto.IntakeResponse, error) {
	cliente := strings.TrimSpace(in.Cliente)
	if cliente == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	entries := toChecklistEntries(in.Checklist)
	if err := validateChecklist(uc.agg.Catalog(), entries); err != nil {
		return nil, err
	}
	foto, err := uc.normalizePhoto(in.FotoMotor)
	if err != nil {
		return nil, err
	}
	fecha := uc.now()
	if in.FechaEntrada != nil && !in.FechaEntrada.IsZero() {
		fecha = *in.FechaEntrada
	}

	motor := &entity.Motor{
		Cliente:          cliente,
		Celular:          strings.TrimSpace(in.Celular),
		Marca:            strings.TrimSpace(in.Marca),
		Vehiculo:         strings.TrimSpace(in.Vehiculo),
		Placa:            strings.ToUpper(strings.TrimSpace(in.Placa)),
		Descripcion:      in.Descripcion,
		FechaEntrada:     fecha,
		Estado:           entity.MotorEnProceso,
		IncluirIVA:       in.IncluirIVA,
		MecanicoNombre:   strings.TrimSpace(in.MecanicoNombre),
		MecanicoTelefono: strings.TrimSpace(in.MecanicoTelefono),
		FotoMotor:        foto,
	}
	err = uc.tx.RunIntake(ctx, func(motors repository.MotorRepository, checklist repository.ChecklistRepository) error {
		if err := motors.Create(ctx, motor); err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return checklist.Replace(ctx, motor.ID, entries)
	})
	if err != nil {
		return nil, fmt.Errorf("ingreso motor: %w", err)
	}
	return &dto.IntakeResponse{Motor: toMotorResponse(motor), Checklist: len(entries)}, nil
}

// List lista los motores activos, opcionalmente por estado. Sin limit devuelve todos.
func (uc *MotorUseCase) List(ctx context.Context, estado string, page dto.PageRequest) ([]dto.MotorResponse, error) {
	switch estado {
	case "", entity.MotorEnProceso, entity.MotorFinalizado:
	default:
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, estado)
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	motors, err := uc.repos.Motors.List(ctx, repository.MotorFilter{Estado: estado, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MotorResponse, len(motors))
	for i, m := range motors {
		out[i] = toMotorResponse(m)
		out[i].FotoMotor = "" // el listado no lleva la foto
	}
	return out, nil
}

// NextNumber número sugerido para el próximo ingreso: motores activos + 1.
func (uc *MotorUseCase) NextNumber(ctx context.Context) (*dto.NextNumberResponse, error) {
	n, err := uc.repos.Motors.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{Numero: n + 1, NumeroSerie: entity.NumeroSerieFor(int64(n + 1))}, nil
}

// Get devuelve el motor con trabajos, ítems, checklist y resumen confirmado.
func (uc *MotorUseCase) Get(ctx context.Context, id int64) (*dto.MotorDetailResponse, error) {
	agg, err := loadAggregate(ctx, uc.fetcher, uc.repos, id)
	if err != nil {
		return nil, err
	}
	summary := uc.agg.ComputeSummary(agg.works, agg.parts, agg.motor.IncluirIVA, invoice.ConfirmedOnly)
	return &dto.MotorDetailResponse{
		Motor:     toMotorResponse(agg.motor),
		Trabajos:  toWorkResponses(agg.works),
		Items:     toPartResponses(agg.parts),
		Checklist: toChecklistResponses(agg.checklist),
		Resumen:   toSummaryResponse(summary),
	}, nil
}

// Update aplica los campos presentes. Un motor finalizado no se puede editar.
func (uc *MotorUseCase) Update(ctx context.Context, id int64, in dto.UpdateMotorRequest) (*dto.MotorResponse, error) {
	m, err := modifiable(ctx, uc.fetcher, id)
	if err != nil {
		return nil, err
	}
	if in.Cliente != nil {
		c := strings.TrimSpace(*in.Cliente)
		if c == "" {
			return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
		}
		m.Cliente = c
	}
	setString(&m.Celular, in.Celular)
	setString(&m.Marca, in.Marca)
	setString(&m.Vehiculo, in.Vehiculo)
	if in.Placa != nil {
		m.Placa = strings.ToUpper(strings.TrimSpace(*in.Placa))
	}
	setString(&m.Descripcion, in.Descripcion)
	setString(&m.Observaciones, in.Observaciones)
	if in.IncluirIVA != nil {
		m.IncluirIVA = *in.IncluirIVA
	}
	setString(&m.MecanicoNombre, in.MecanicoNombre)
	setString(&m.MecanicoTelefono, in.MecanicoTelefono)
	setString(&m.MedidaBloque, in.MedidaBloque)
	setString(&m.MedidaBiela, in.MedidaBiela)
	setString(&m.MedidaBancada, in.MedidaBancada)
	setString(&m.MedidaCiguenal, in.MedidaCiguenal)
	if in.FotoMotor != nil {
		foto, err := uc.normalizePhoto(*in.FotoMotor)
		if err != nil {
			return nil, err
		}
		m.FotoMotor = foto
	}
	if err := validateMedidas(m); err != nil {
		return nil, err
	}
	if err := uc.repos.Motors.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("actualizar motor: %w", err)
	}
	out := toMotorResponse(m)
	return &out, nil
}

// Finalize lleva el motor a Finalizado.
func (uc *MotorUseCase) Finalize(ctx context.Context, id int64) (*dto.MotorResponse, error) {
	return uc.finalize(ctx, id, "")
}

// RegisterExit registra la salida del motor con observaciones; también lo finaliza.
func (uc *MotorUseCase) RegisterExit(ctx context.Context, id int64, in dto.SalidaRequest) (*dto.MotorResponse, error) {
	return uc.finalize(ctx, id, strings.TrimSpace(in.Observaciones))
}

func (uc *MotorUseCase) finalize(ctx context.Context, id int64, observaciones string) (*dto.MotorResponse, error) {
	m, err := uc.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Finalize(uc.now(), observaciones) {
		return nil, fmt.Errorf("%w: el motor %s ya está finalizado", domain.ErrConflict, m.NumeroSerie)
	}
	if err := uc.repos.Motors.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("finalizar motor: %w", err)
	}
	out := toMotorResponse(m)
	return &out, nil
}

// Delete borra lógicamente el motor; queda en el historial.
func (uc *MotorUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.fetcher.Fetch(ctx, id); err != nil {
		return err
	}
	return uc.repos.Motors.SoftDelete(ctx, id)
}

func (uc *MotorUseCase) normalizePhoto(dataURI string) (string, error) {
	dataURI = strings.TrimSpace(dataURI)
	if dataURI == "" || uc.photos == nil {
		return dataURI, nil
	}
	out, err := uc.photos.Normalize(dataURI)
	if err != nil {
		return "", fmt.Errorf("%w: foto del motor: %v", domain.ErrInvalidInput, err)
	}
	return out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// validateMedidas restringe las medidas a los valores que ofrece el taller.
func validateMedidas(m *entity.Motor) error {
	check := func(name, v string, allowed []string) error {
		if v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("%w: medida de %s inválida %q", domain.ErrInvalidInput, name, v)
	}
	if err := check("bloque", m.MedidaBloque, entity.MedidasBloque); err != nil {
		return err
	}
	if err := check("biela", m.MedidaBiela, entity.MedidasBielaBancada); err != nil {
		return err
	}
	return check("bancada", m.MedidaBancada, entity.MedidasBielaBancada)
}

// motorAggregate es el motor con todos sus registros.
type motorAggregate struct {
	motor     *entity.Motor
	works     []entity.WorkEntry
	parts     []entity.PartEntry
	checklist []entity.ChecklistEntry
}

func loadAggregate(ctx context.Context, fetcher *MotorFetcher, repos Repos, id int64) (*motorAggregate, error) {
	m, err := fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	works, err := repos.Works.ListByMotor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("trabajos del motor: %w", err)
	}
	parts, err := repos.Parts.ListByMotor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ítems del motor: %w", err)
	}
	checklist, err := repos.Checklist.ListByMotor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checklist del motor: %w", err)
	}
	return &motorAggregate{motor: m, works: works, parts: parts, checklist: checklist}, nil
}
