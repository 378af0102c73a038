package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChecklistItemRequest una fila del checklist de ingreso.
// Una fila sin componente y con observaciones guarda la observación de la sección.
type ChecklistItemRequest struct {
	Seccion       string `json:"seccion" validate:"required,max=50"`
	Componente    string `json:"componente" validate:"max=100"`
	Presente      bool   `json:"presente"`
	Observaciones string `json:"observaciones,omitempty" validate:"max=1000"`
}

// IntakeMotorRequest body para POST /api/motores/entrada.
type IntakeMotorRequest struct {
	Cliente          string                 `json:"cliente" validate:"required,max=200"`
	Celular          string                 `json:"celular,omitempty" validate:"max=30"`
	Marca            string                 `json:"marca,omitempty" validate:"max=100"`
	Vehiculo         string                 `json:"vehiculo,omitempty" validate:"max=100"`
	Placa            string                 `json:"placa,omitempty" validate:"max=20"`
	Descripcion      string                 `json:"descripcion,omitempty"`
	FechaEntrada     *time.Time             `json:"fecha_entrada,omitempty"`
	IncluirIVA       bool                   `json:"incluir_iva"`
	MecanicoNombre   string                 `json:"mecanico_nombre,omitempty" validate:"max=100"`
	MecanicoTelefono string                 `json:"mecanico_telefono,omitempty" validate:"max=30"`
	FotoMotor        string                 `json:"foto_motor,omitempty"` // data URI
	Checklist        []ChecklistItemRequest `json:"checklist,omitempty" validate:"dive"`
}

// UpdateMotorRequest body para PUT /api/motores/:id. Solo se aplican los campos presentes.
type UpdateMotorRequest struct {
	Cliente          *string `json:"cliente,omitempty" validate:"omitempty,min=1,max=200"`
	Celular          *string `json:"celular,omitempty" validate:"omitempty,max=30"`
	Marca            *string `json:"marca,omitempty" validate:"omitempty,max=100"`
	Vehiculo         *string `json:"vehiculo,omitempty" validate:"omitempty,max=100"`
	Placa            *string `json:"placa,omitempty" validate:"omitempty,max=20"`
	Descripcion      *string `json:"descripcion,omitempty"`
	Observaciones    *string `json:"observaciones,omitempty"`
	IncluirIVA       *bool   `json:"incluir_iva,omitempty"`
	MecanicoNombre   *string `json:"mecanico_nombre,omitempty" validate:"omitempty,max=100"`
	MecanicoTelefono *string `json:"mecanico_telefono,omitempty" validate:"omitempty,max=30"`
	MedidaBloque     *string `json:"medida_bloque,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00 1.25 1.50 1.75"`
	MedidaBiela      *string `json:"medida_biela,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00"`
	MedidaBancada    *string `json:"medida_bancada,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00"`
	MedidaCiguenal   *string `json:"medida_ciguenal,omitempty" validate:"omitempty,max=50"`
	FotoMotor        *string `json:"foto_motor,omitempty"`
}

// SalidaRequest body para POST /api/motores/:id/salida.
type SalidaRequest struct {
	Observaciones string `json:"observaciones" validate:"max=2000"`
}

// MotorResponse motor en respuestas.
type MotorResponse struct {
	ID               int64      `json:"id"`
	NumeroSerie      string     `json:"numero_serie"`
	Cliente          string     `json:"cliente"`
	Celular          string     `json:"celular"`
	Marca            string     `json:"marca"`
	Vehiculo         string     `json:"vehiculo"`
	Placa            string     `json:"placa"`
	Descripcion      string     `json:"descripcion"`
	FechaEntrada     time.Time  `json:"fecha_entrada"`
	FechaSalida      *time.Time `json:"fecha_salida,omitempty"`
	Estado           string     `json:"estado"`
	Observaciones    string     `json:"observaciones"`
	IncluirIVA       bool       `json:"incluir_iva"`
	MecanicoNombre   string     `json:"mecanico_nombre"`
	MecanicoTelefono string     `json:"mecanico_telefono"`
	MedidaBloque     string     `json:"medida_bloque"`
	MedidaBiela      string     `json:"medida_biela"`
	MedidaBancada    string     `json:"medida_bancada"`
	MedidaCiguenal   string     `json:"medida_ciguenal"`
	Eliminado        bool       `json:"eliminado,omitempty"`
	FotoMotor        string     `json:"foto_motor,omitempty"`
}

// MotorDetailResponse GET /api/motores/:id: motor con todos sus registros y el resumen confirmado.
type MotorDetailResponse struct {
	Motor     MotorResponse           `json:"motor"`
	Trabajos  []WorkEntryResponse     `json:"trabajos"`
	Items     []PartEntryResponse     `json:"items"`
	Checklist []ChecklistItemResponse `json:"checklist"`
	Resumen   SummaryResponse         `json:"resumen"`
}

// IntakeResponse resultado del ingreso.
type IntakeResponse struct {
	Motor     MotorResponse `json:"motor"`
	Checklist int           `json:"checklist_filas"`
}

// NextNumberResponse número sugerido para el próximo motor.
type NextNumberResponse struct {
	Numero      int    `json:"numero"`
	NumeroSerie string `json:"numero_serie"`
}

// HistoryEntryResponse motor finalizado o eliminado con su total confirmado.
type HistoryEntryResponse struct {
	Motor  MotorResponse   `json:"motor"`
	Estado string          `json:"estado"` // Finalizado | Eliminado
	Total  decimal.Decimal `json:"total"`
}
