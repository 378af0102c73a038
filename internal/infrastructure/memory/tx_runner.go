package memory

import (
	"context"

	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

// TxRunner emula transacciones: serializa los callbacks y restaura una copia
// del store si fn devuelve error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunIntake ejecuta el ingreso (motor + checklist) de forma atómica.
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	motorRepo repository.MotorRepository,
	checklistRepo repository.ChecklistRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	if err := fn(r.s.Motors(), r.s.Checklist()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
