package entity

import (
	"fmt"
	"time"
)

// Estados de un motor dentro del taller.
const (
	MotorEnProceso  = "En proceso"
	MotorFinalizado = "Finalizado"
)

// Motor es la raíz del agregado: un motor que ingresa al taller de rectificación.
type Motor struct {
	ID               int64
	NumeroSerie      string
	Cliente          string
	Celular          string
	Marca            string
	Vehiculo         string
	Placa            string
	Descripcion      string
	FechaEntrada     time.Time
	FechaSalida      *time.Time
	Estado           string
	Observaciones    string
	IncluirIVA       bool
	MecanicoNombre   string
	MecanicoTelefono string
	MedidaBloque     string
	MedidaBiela      string
	MedidaBancada    string
	MedidaCiguenal   string
	Eliminado        bool
	FotoMotor        string // data URI (JPEG normalizado) o vacío
}

// NumeroSerieFor genera el número de serie visible a partir del ID autoincremental.
func NumeroSerieFor(id int64) string {
	return fmt.Sprintf("%05d", id)
}

// IsFinalizado indica si el motor llegó al estado terminal de facturación.
func (m *Motor) IsFinalizado() bool {
	return m.Estado == MotorFinalizado
}

// CanModify: solo los motores en proceso y no eliminados aceptan cambios
// en sus datos, trabajos, ítems o checklist.
func (m *Motor) CanModify() bool {
	return !m.Eliminado && !m.IsFinalizado()
}

// Finalize lleva el motor a Finalizado y registra la fecha de salida.
// Devuelve false si la transición no es válida (ya finalizado o eliminado).
func (m *Motor) Finalize(at time.Time, observaciones string) bool {
	if !m.CanModify() {
		return false
	}
	m.Estado = MotorFinalizado
	m.FechaSalida = &at
	if observaciones != "" {
		m.Observaciones = observaciones
	}
	return true
}

// HasMedidas indica si hay al menos una medida registrada para exportar.
func (m *Motor) HasMedidas() bool {
	return m.MedidaBloque != "" || m.MedidaBiela != "" || m.MedidaBancada != ""
}

// Medidas válidas ofrecidas en el taller.
var (
	MedidasBloque       = []string{"Estandar", "0.25", "0.50", "0.75", "1.00", "1.25", "1.50", "1.75"}
	MedidasBielaBancada = []string{"Estandar", "0.25", "0.50", "0.75", "1.00"}
)
