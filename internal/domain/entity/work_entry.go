package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un trabajo.
const (
	TrabajoEnProceso  = "En proceso"
	TrabajoFinalizado = "Finalizado"
)

// Confirmación de un registro frente al servidor.
const (
	Confirmed   = "confirmed"   // persistido por el servidor
	Speculative = "speculative" // mostrado localmente, aún sin confirmar
)

// WorkEntry es un trabajo facturable (mano de obra) de un motor.
type WorkEntry struct {
	ID            int64
	MotorID       int64
	Descripcion   string
	ParteAsociada string
	// Precio inválido o ausente se trata como cero en los totales.
	Precio       decimal.NullDecimal
	Estado       string
	Mecanico     string
	Confirmacion string
	CreatedAt    time.Time
}

// IsSpeculative indica si el trabajo aún no fue confirmado por el servidor.
func (w WorkEntry) IsSpeculative() bool {
	return w.Confirmacion == Speculative
}

// PartEntry es un ítem (repuesto) facturable: Cantidad × Valor.
type PartEntry struct {
	ID           int64
	MotorID      int64
	Cantidad     int
	Descripcion  string
	Valor        decimal.NullDecimal
	Confirmacion string
	CreatedAt    time.Time
}

// IsSpeculative indica si el ítem aún no fue confirmado por el servidor.
func (p PartEntry) IsSpeculative() bool {
	return p.Confirmacion == Speculative
}

// ChecklistEntry marca la presencia de un componente al ingreso.
// Observaciones solo tiene sentido en las secciones con observaciones (bielas, varios)
// y se guarda una vez por sección.
type ChecklistEntry struct {
	ID            int64
	MotorID       int64
	Seccion       string
	Componente    string
	Presente      bool
	Observaciones string
}
