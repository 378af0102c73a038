package repository

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// MotorFilter filtra el listado de motores activos.
type MotorFilter struct {
	Estado string // vacío = todos los no eliminados
	Limit  int
	Offset int
}

// MotorRepository define el puerto de persistencia para Motor (DIP).
// GetByID devuelve nil, nil si el motor no existe o está eliminado.
type MotorRepository interface {
	Create(ctx context.Context, motor *entity.Motor) error
	GetByID(ctx context.Context, id int64) (*entity.Motor, error)
	List(ctx context.Context, filter MotorFilter) ([]*entity.Motor, error)
	// History lista motores finalizados o eliminados, el más reciente primero.
	History(ctx context.Context, limit, offset int) ([]*entity.Motor, error)
	Update(ctx context.Context, motor *entity.Motor) error
	SoftDelete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}
