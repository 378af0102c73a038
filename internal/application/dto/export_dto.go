package dto

import "github.com/shopspring/decimal"

// ExportRequest body para POST /api/motores/:id/exportar. Las medidas se guardan
// en el motor antes de generar el PDF; se exige al menos bloque, biela o bancada.
type ExportRequest struct {
	MedidaBloque   string `json:"medida_bloque,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00 1.25 1.50 1.75"`
	MedidaBiela    string `json:"medida_biela,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00"`
	MedidaBancada  string `json:"medida_bancada,omitempty" validate:"omitempty,oneof=Estandar 0.25 0.50 0.75 1.00"`
	MedidaCiguenal string `json:"medida_ciguenal,omitempty" validate:"max=50"`
	Telefono       string `json:"telefono,omitempty" validate:"max=30"` // destino del enlace de WhatsApp
}

// ExportResponse PDF archivado y enlace para compartirlo.
type ExportResponse struct {
	Archivo     string          `json:"archivo"`
	URL         string          `json:"url"`
	WhatsAppURL string          `json:"whatsapp_url,omitempty"`
	Mensaje     string          `json:"mensaje"`
	Total       decimal.Decimal `json:"total"`
}

// EmailExportRequest body para POST /api/motores/:id/exportar/email.
type EmailExportRequest struct {
	Para   string `json:"para" validate:"required,email"`
	Asunto string `json:"asunto,omitempty" validate:"max=200"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
