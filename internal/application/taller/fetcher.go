package taller

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
	"github.com/jhoicas/rectificadora-api/pkg/logger"
	"github.com/jhoicas/rectificadora-api/pkg/retry"
)

// MotorFetcher lee motores reintentando las fallas transitorias de la base de datos
// con backoff acotado. NotFound nunca se reintenta.
type MotorFetcher struct {
	repo      repository.MotorRepository
	policy    retry.Policy
	clock     retry.Clock
	transient func(error) bool
	log       *logger.Logger
}

// NewMotorFetcher construye el fetcher. transient clasifica los errores reintentables;
// nil reintenta todo error que no sea de dominio.
func NewMotorFetcher(repo repository.MotorRepository, policy retry.Policy, transient func(error) bool, log *logger.Logger) *MotorFetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &MotorFetcher{repo: repo, policy: policy, clock: retry.SystemClock{}, transient: transient, log: log}
}

// WithClock reemplaza el reloj (pruebas).
func (f *MotorFetcher) WithClock(c retry.Clock) *MotorFetcher {
	f.clock = c
	return f
}

// Fetch devuelve el motor o domain.ErrNotFound. Si se agotan los reintentos
// devuelve domain.ErrUnavailable envolviendo la última falla.
func (f *MotorFetcher) Fetch(ctx context.Context, id int64) (*entity.Motor, error) {
	var motor *entity.Motor
	err := retry.Do(ctx, f.policy, retry.Options{
		Clock:     f.clock,
		Retryable: f.retryable,
		OnRetry: func(s retry.State) {
			f.log.Warn().
				Int64("motor_id", id).
				Int("intento", s.Attempt).
				Dur("espera", s.NextDelay).
				Err(s.LastErr).
				Msg("lectura de motor fallida, reintentando")
		},
	}, func(ctx context.Context) error {
		m, err := f.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return retry.Permanent(domain.ErrNotFound)
		}
		motor = m
		return nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			f.log.Error().Int64("motor_id", id).Err(err).Msg("reintentos agotados leyendo motor")
			return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}
		return nil, err
	}
	return motor, nil
}

func (f *MotorFetcher) retryable(err error) bool {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if f.transient == nil {
		return true
	}
	return f.transient(err)
}
