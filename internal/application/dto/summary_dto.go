package dto

import "github.com/shopspring/decimal"

// SummaryResponse resumen financiero. Base "provisional" indica que incluye
// registros pendientes de confirmación (Pendientes > 0).
type SummaryResponse struct {
	SubtotalTrabajos decimal.Decimal `json:"subtotal_trabajos"`
	SubtotalItems    decimal.Decimal `json:"subtotal_items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	IVA              decimal.Decimal `json:"iva"`
	Total            decimal.Decimal `json:"total"`
	TotalTexto       string          `json:"total_texto"`
	IncluirIVA       bool            `json:"incluir_iva"`
	TasaIVA          decimal.Decimal `json:"tasa_iva"`
	Base             string          `json:"base"`
	Pendientes       int             `json:"pendientes"`
}

// PendingWorkEntry trabajo aún no confirmado por el servidor.
type PendingWorkEntry struct {
	Descripcion string `json:"descripcion"`
	Precio      Amount `json:"precio"`
}

// PendingPartEntry ítem aún no confirmado por el servidor.
type PendingPartEntry struct {
	Cantidad    int    `json:"cantidad"`
	Descripcion string `json:"descripcion"`
	Valor       Amount `json:"valor"`
}

// PreviewSummaryRequest body para POST /api/motores/:id/resumen/preview.
// IncluirIVA opcional permite previsualizar el cambio de la bandera sin guardarlo.
type PreviewSummaryRequest struct {
	Trabajos   []PendingWorkEntry `json:"trabajos"`
	Items      []PendingPartEntry `json:"items"`
	IncluirIVA *bool              `json:"incluir_iva,omitempty"`
}
