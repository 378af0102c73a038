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

var _ repository.PartEntryRepository = (*PartEntryRepo)(nil)

// PartEntryRepo persiste los ítems (repuestos) en la tabla items.
type PartEntryRepo struct {
	q Querier
}

// NewPartEntryRepository construye el repositorio de ítems.
func NewPartEntryRepository(q Querier) *PartEntryRepo {
	return &PartEntryRepo{q: q}
}

func (r *PartEntryRepo) Create(ctx context.Context, p *entity.PartEntry) error {
	query := `
		INSERT INTO items (motor_id, cantidad, descripcion, valor)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, p.MotorID, p.Cantidad, p.Descripcion, p.Valor).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	p.Confirmacion = entity.Confirmed
	return nil
}

func (r *PartEntryRepo) GetByID(ctx context.Context, id int64) (*entity.PartEntry, error) {
	var p entity.PartEntry
	err := r.q.QueryRow(ctx,
		`SELECT id, motor_id, cantidad, descripcion, valor, created_at FROM items WHERE id = $1`, id,
	).Scan(&p.ID, &p.MotorID, &p.Cantidad, &p.Descripcion, &p.Valor, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	p.Confirmacion = entity.Confirmed
	return &p, nil
}

func (r *PartEntryRepo) ListByMotor(ctx context.Context, motorID int64) ([]entity.PartEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, motor_id, cantidad, descripcion, valor, created_at FROM items WHERE motor_id = $1 ORDER BY id`, motorID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list := make([]entity.PartEntry, 0)
	for rows.Next() {
		var p entity.PartEntry
		if err := rows.Scan(&p.ID, &p.MotorID, &p.Cantidad, &p.Descripcion, &p.Valor, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		p.Confirmacion = entity.Confirmed
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartEntryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
