package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

var _ repository.ChecklistRepository = (*ChecklistRepo)(nil)

// ChecklistRepo persiste el checklist de ingreso en la tabla checklist.
type ChecklistRepo struct {
	q Querier
}

// NewChecklistRepository construye el repositorio del checklist.
func NewChecklistRepository(q Querier) *ChecklistRepo {
	return &ChecklistRepo{q: q}
}

func (r *ChecklistRepo) ListByMotor(ctx context.Context, motorID int64) ([]entity.ChecklistEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, motor_id, seccion, componente, presente, observaciones
		FROM checklist WHERE motor_id = $1 ORDER BY id`, motorID)
	if err != nil {
		return nil, fmt.Errorf("list checklist: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ChecklistEntry, 0)
	for rows.Next() {
		var e entity.ChecklistEntry
		if err := rows.Scan(&e.ID, &e.MotorID, &e.Seccion, &e.Componente, &e.Presente, &e.Observaciones); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Replace borra y reinserta todas las filas del motor en una transacción
// (savepoint si r ya corre dentro de una). Las filas se envían en un solo batch.
func (r *ChecklistRepo) Replace(ctx context.Context, motorID int64, entries []entity.ChecklistEntry) error {
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM checklist WHERE motor_id = $1`, motorID); err != nil {
			return fmt.Errorf("delete checklist: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, e := range entries {
			batch.Queue(`
				INSERT INTO checklist (motor_id, seccion, componente, presente, observaciones)
				VALUES ($1, $2, $3, $4, $5)`,
				motorID, e.Seccion, e.Componente, e.Presente, e.Observaciones)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert checklist: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace checklist: %w", err)
	}
	return nil
}
