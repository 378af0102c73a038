package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkEntryRequest body para POST /api/motores/:id/trabajos.
type CreateWorkEntryRequest struct {
	Descripcion   string `json:"descripcion" validate:"required,max=500"`
	ParteAsociada string `json:"parte_asociada,omitempty" validate:"max=100"`
	Precio        Amount `json:"precio"`
	Mecanico      string `json:"mecanico,omitempty" validate:"max=100"`
}

// UpdateWorkEntryRequest body para PUT /api/trabajos/:id.
type UpdateWorkEntryRequest struct {
	Descripcion   *string `json:"descripcion,omitempty" validate:"omitempty,min=1,max=500"`
	ParteAsociada *string `json:"parte_asociada,omitempty" validate:"omitempty,max=100"`
	Precio        *Amount `json:"precio,omitempty"`
	Mecanico      *string `json:"mecanico,omitempty" validate:"omitempty,max=100"`
	Estado        *string `json:"estado,omitempty"`
}

// WorkEntryResponse trabajo en respuestas. Precio null = inválido (cuenta como 0).
type WorkEntryResponse struct {
	ID            int64               `json:"id"`
	MotorID       int64               `json:"motor_id"`
	Descripcion   string              `json:"descripcion"`
	ParteAsociada string              `json:"parte_asociada"`
	Precio        decimal.NullDecimal `json:"precio"`
	Estado        string              `json:"estado"`
	Mecanico      string              `json:"mecanico"`
	Confirmacion  string              `json:"confirmacion"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CreatePartEntryRequest body para POST /api/motores/:id/items.
type CreatePartEntryRequest struct {
	Cantidad    int    `json:"cantidad" validate:"required,min=1"`
	Descripcion string `json:"descripcion" validate:"required,max=500"`
	Valor       Amount `json:"valor"`
}

// PartEntryResponse ítem en respuestas.
type PartEntryResponse struct {
	ID           int64               `json:"id"`
	MotorID      int64               `json:"motor_id"`
	Cantidad     int                 `json:"cantidad"`
	Descripcion  string              `json:"descripcion"`
	Valor        decimal.NullDecimal `json:"valor"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Confirmacion string              `json:"confirmacion"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ReplaceChecklistRequest body para PUT /api/motores/:id/checklist (reemplazo completo).
type ReplaceChecklistRequest struct {
	Items []ChecklistItemRequest `json:"items" validate:"dive"`
}

// ChecklistItemResponse fila cruda del checklist.
type ChecklistItemResponse struct {
	ID            int64  `json:"id"`
	Seccion       string `json:"seccion"`
	Componente    string `json:"componente"`
	Presente      bool   `json:"presente"`
	Observaciones string `json:"observaciones,omitempty"`
}

// ComponentMarkResponse marca [X]/[ ] de un componente.
type ComponentMarkResponse struct {
	Nombre   string `json:"nombre"`
	Presente bool   `json:"presente"`
}

// ChecklistSectionResponse sección normalizada, en dos columnas.
type ChecklistSectionResponse struct {
	Key              string                     `json:"key"`
	Titulo           string                     `json:"titulo"`
	Columnas         [2][]ComponentMarkResponse `json:"columnas"`
	ConObservaciones bool                       `json:"con_observaciones"`
	Observaciones    string                     `json:"observaciones,omitempty"`
}

// CatalogSectionResponse sección del catálogo estático.
type CatalogSectionResponse struct {
	Key           string   `json:"key"`
	Titulo        string   `json:"titulo"`
	Componentes   []string `json:"componentes"`
	Observaciones bool     `json:"observaciones"`
}
