package repository

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// WorkEntryRepository define el puerto de persistencia para los trabajos de un motor.
type WorkEntryRepository interface {
	Create(ctx context.Context, work *entity.WorkEntry) error
	GetByID(ctx context.Context, id int64) (*entity.WorkEntry, error)
	ListByMotor(ctx context.Context, motorID int64) ([]entity.WorkEntry, error)
	Update(ctx context.Context, work *entity.WorkEntry) error
	Delete(ctx context.Context, id int64) error
}

// PartEntryRepository define el puerto de persistencia para los ítems (repuestos).
type PartEntryRepository interface {
	Create(ctx context.Context, part *entity.PartEntry) error
	GetByID(ctx context.Context, id int64) (*entity.PartEntry, error)
	ListByMotor(ctx context.Context, motorID int64) ([]entity.PartEntry, error)
	Delete(ctx context.Context, id int64) error
}
