package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

var _ repository.WorkEntryRepository = (*WorkEntryRepo)(nil)

// WorkEntryRepo persiste los trabajos en la tabla trabajos.
type WorkEntryRepo struct {
	q Querier
}

// NewWorkEntryRepository construye el repositorio de trabajos.
func NewWorkEntryRepository(q Querier) *WorkEntryRepo {
	return &WorkEntryRepo{q: q}
}

// Create inserta el trabajo. Todo lo que devuelve el servidor queda confirmado.
func (r *WorkEntryRepo) Create(ctx context.Context, w *entity.WorkEntry) error {
	query := `
		INSERT INTO trabajos (motor_id, descripcion, parte_asociada, precio, estado, mecanico)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		w.MotorID, w.Descripcion, w.ParteAsociada, w.Precio, w.Estado, w.Mecanico,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trabajo: %w", err)
	}
	w.Confirmacion = entity.Confirmed
	return nil
}

func (r *WorkEntryRepo) GetByID(ctx context.Context, id int64) (*entity.WorkEntry, error) {
	query := `
		SELECT id, motor_id, descripcion, parte_asociada, precio, estado, mecanico, created_at
		FROM trabajos WHERE id = $1`
	var w entity.WorkEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.MotorID, &w.Descripcion, &w.ParteAsociada, &w.Precio, &w.Estado, &w.Mecanico, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trabajo: %w", err)
	}
	w.Confirmacion = entity.Confirmed
	return &w, nil
}

func (r *WorkEntryRepo) ListByMotor(ctx context.Context, motorID int64) ([]entity.WorkEntry, error) {
	query := `
		SELECT id, motor_id, descripcion, parte_asociada, precio, estado, mecanico, created_at
		FROM trabajos WHERE motor_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, motorID)
	if err != nil {
		return nil, fmt.Errorf("list trabajos: %w", err)
	}
	defer rows.Close()

	list := make([]entity.WorkEntry, 0)
	for rows.Next() {
		var w entity.WorkEntry
		if err := rows.Scan(&w.ID, &w.MotorID, &w.Descripcion, &w.ParteAsociada, &w.Precio, &w.Estado, &w.Mecanico, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trabajo: %w", err)
		}
		w.Confirmacion = entity.Confirmed
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WorkEntryRepo) Update(ctx context.Context, w *entity.WorkEntry) error {
	query := `
		UPDATE trabajos SET descripcion = $2, parte_asociada = $3, precio = $4, estado = $5, mecanico = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, w.ID, w.Descripcion, w.ParteAsociada, w.Precio, w.Estado, w.Mecanico)
	if err != nil {
		return fmt.Errorf("update trabajo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	w.Confirmacion = entity.Confirmed
	return nil
}

func (r *WorkEntryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM trabajos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trabajo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
