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

var _ repository.MotorRepository = (*MotorRepo)(nil)

const motorColumns = `id, numero_serie, cliente, celular, marca, vehiculo, placa, descripcion,
	fecha_entrada, fecha_salida, estado, observaciones, incluir_iva,
	mecanico_nombre, mecanico_telefono, medida_bloque, medida_biela, medida_bancada, medida_ciguenal,
	eliminado, foto_motor`

// MotorRepo implementación del puerto MotorRepository sobre PostgreSQL (usable con pool o tx).
type MotorRepo struct {
	q Querier
}

// NewMotorRepository construye el adaptador de persistencia para motores. Pasar pool o tx (Querier).
func NewMotorRepository(q Querier) *MotorRepo {
	return &MotorRepo{q: q}
}

// Create reserva el ID de la secuencia para fijar el número de serie en el mismo INSERT.
func (r *MotorRepo) Create(ctx context.Context, m *entity.Motor) error {
	var id int64
	if err := r.q.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('motores', 'id'))`).Scan(&id); err != nil {
		return fmt.Errorf("reservar id motor: %w", err)
	}
	m.ID = id
	m.NumeroSerie = entity.NumeroSerieFor(id)

	query := `
		INSERT INTO motores (` + motorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.NumeroSerie, m.Cliente, m.Celular, m.Marca, m.Vehiculo, m.Placa, m.Descripcion,
		m.FechaEntrada, m.FechaSalida, m.Estado, m.Observaciones, m.IncluirIVA,
		m.MecanicoNombre, m.MecanicoTelefono, m.MedidaBloque, m.MedidaBiela, m.MedidaBancada, m.MedidaCiguenal,
		m.Eliminado, m.FotoMotor,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert motor: %w", err)
	}
	return nil
}

// GetByID obtiene un motor no eliminado por ID.
func (r *MotorRepo) GetByID(ctx context.Context, id int64) (*entity.Motor, error) {
	query := `SELECT ` + motorColumns + ` FROM motores WHERE id = $1 AND NOT eliminado`
	m, err := scanMotor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motor: %w", err)
	}
	return m, nil
}

// List lista los motores activos, opcionalmente filtrados por estado.
func (r *MotorRepo) List(ctx context.Context, f repository.MotorFilter) ([]*entity.Motor, error) {
	query := `SELECT ` + motorColumns + ` FROM motores
		WHERE NOT eliminado AND ($1 = '' OR estado = $1)
		ORDER BY id DESC
		LIMIT NULLIF($2, 0) OFFSET $3`
	return r.queryMotors(ctx, "list motores", query, f.Estado, f.Limit, f.Offset)
}

// History lista motores finalizados o eliminados.
func (r *MotorRepo) History(ctx context.Context, limit, offset int) ([]*entity.Motor, error) {
	query := `SELECT ` + motorColumns + ` FROM motores
		WHERE eliminado OR estado = $1
		ORDER BY COALESCE(fecha_salida, fecha_entrada) DESC, id DESC
		LIMIT NULLIF($2, 0) OFFSET $3`
	return r.queryMotors(ctx, "historial motores", query, entity.MotorFinalizado, limit, offset)
}

// Update actualiza todos los campos editables del motor.
func (r *MotorRepo) Update(ctx context.Context, m *entity.Motor) error {
	query := `
		UPDATE motores SET cliente = $2, celular = $3, marca = $4, vehiculo = $5, placa = $6,
			descripcion = $7, fecha_salida = $8, estado = $9, observaciones = $10, incluir_iva = $11,
			mecanico_nombre = $12, mecanico_telefono = $13, medida_bloque = $14, medida_biela = $15,
			medida_bancada = $16, medida_ciguenal = $17, foto_motor = $18
		WHERE id = $1 AND NOT eliminado`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Cliente, m.Celular, m.Marca, m.Vehiculo, m.Placa,
		m.Descripcion, m.FechaSalida, m.Estado, m.Observaciones, m.IncluirIVA,
		m.MecanicoNombre, m.MecanicoTelefono, m.MedidaBloque, m.MedidaBiela,
		m.MedidaBancada, m.MedidaCiguenal, m.FotoMotor,
	)
	if err != nil {
		return fmt.Errorf("update motor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el motor como eliminado; pasa a formar parte del historial.
func (r *MotorRepo) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE motores SET eliminado = TRUE WHERE id = $1 AND NOT eliminado`, id)
	if err != nil {
		return fmt.Errorf("delete motor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActive cuenta los motores no eliminados.
func (r *MotorRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM motores WHERE NOT eliminado`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count motores: %w", err)
	}
	return n, nil
}

func (r *MotorRepo) queryMotors(ctx context.Context, op, query string, args ...any) ([]*entity.Motor, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]*entity.Motor, 0)
	for rows.Next() {
		m, err := scanMotor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMotor(row pgx.Row) (*entity.Motor, error) {
	var m entity.Motor
	err := row.Scan(
		&m.ID, &m.NumeroSerie, &m.Cliente, &m.Celular, &m.Marca, &m.Vehiculo, &m.Placa, &m.Descripcion,
		&m.FechaEntrada, &m.FechaSalida, &m.Estado, &m.Observaciones, &m.IncluirIVA,
		&m.MecanicoNombre, &m.MecanicoTelefono, &m.MedidaBloque, &m.MedidaBiela, &m.MedidaBancada, &m.MedidaCiguenal,
		&m.Eliminado, &m.FotoMotor,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
