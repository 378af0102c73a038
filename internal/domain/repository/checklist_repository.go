package repository

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// ChecklistRepository define el puerto de persistencia del checklist de ingreso.
type ChecklistRepository interface {
	ListByMotor(ctx context.Context, motorID int64) ([]entity.ChecklistEntry, error)
	// Replace reemplaza el checklist completo del motor (borrar y reinsertar, nunca diff).
	Replace(ctx context.Context, motorID int64, entries []entity.ChecklistEntry) error
}
