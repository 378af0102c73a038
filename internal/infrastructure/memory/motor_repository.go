package memory

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

var _ repository.MotorRepository = (*MotorRepo)(nil)

// MotorRepo implementa MotorRepository en memoria.
type MotorRepo struct {
	s *Store
}

// Create asigna ID y número de serie.
func (r *MotorRepo) Create(_ context.Context, motor *entity.Motor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.motorSeq++
	motor.ID = r.s.motorSeq
	motor.NumeroSerie = entity.NumeroSerieFor(motor.ID)
	r.s.motors[motor.ID] = *motor
	return nil
}

// GetByID devuelve nil, nil si no existe o está eliminado.
func (r *MotorRepo) GetByID(_ context.Context, id int64) (*entity.Motor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.motors[id]
	if !ok || m.Eliminado {
		return nil, nil
	}
	return &m, nil
}

// List devuelve los motores no eliminados, el más reciente primero.
func (r *MotorRepo) List(_ context.Context, filter repository.MotorFilter) ([]*entity.Motor, error) {
	r.s.mu.RLock()
	out := make([]*entity.Motor, 0, len(r.s.motors))
	for _, m := range r.s.motors {
		if m.Eliminado || (filter.Estado != "" && m.Estado != filter.Estado) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	r.s.mu.RUnlock()
	sortByIDDesc(out)
	return paginate(out, filter.Limit, filter.Offset), nil
}

// History devuelve los motores finalizados o eliminados.
func (r *MotorRepo) History(_ context.Context, limit, offset int) ([]*entity.Motor, error) {
	r.s.mu.RLock()
	out := make([]*entity.Motor, 0)
	for _, m := range r.s.motors {
		if !m.Eliminado && !m.IsFinalizado() {
			continue
		}
		m := m
		out = append(out, &m)
	}
	r.s.mu.RUnlock()
	sortByIDDesc(out)
	return paginate(out, limit, offset), nil
}

// Update reemplaza el motor completo.
func (r *MotorRepo) Update(_ context.Context, motor *entity.Motor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.motors[motor.ID]
	if !ok || cur.Eliminado {
		return domain.ErrNotFound
	}
	r.s.motors[motor.ID] = *motor
	return nil
}

// SoftDelete marca el motor como eliminado.
func (r *MotorRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.motors[id]
	if !ok || m.Eliminado {
		return domain.ErrNotFound
	}
	m.Eliminado = true
	r.s.motors[id] = m
	return nil
}

// CountActive cuenta los motores no eliminados.
func (r *MotorRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.motors {
		if !m.Eliminado {
			n++
		}
	}
	return n, nil
}

func paginate(motors []*entity.Motor, limit, offset int) []*entity.Motor {
	if offset > 0 {
		if offset >= len(motors) {
			return []*entity.Motor{}
		}
		motors = motors[offset:]
	}
	if limit > 0 && limit < len(motors) {
		motors = motors[:limit]
	}
	return motors
}
