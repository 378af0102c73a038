package taller

import (
	"context"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

// IntakeTxRunner ejecuta el ingreso de un motor (motor + checklist) en una transacción.
type IntakeTxRunner interface {
	RunIntake(ctx context.Context, fn func(
		motorRepo repository.MotorRepository,
		checklistRepo repository.ChecklistRepository,
	) error) error
}

// PhotoProcessor normaliza la foto del motor recibida como data URI.
type PhotoProcessor interface {
	Normalize(dataURI string) (string, error)
}

// MotorReport son los datos ya calculados que necesita el render del PDF.
type MotorReport struct {
	Taller     string
	Motor      entity.Motor
	Trabajos   []entity.WorkEntry
	Items      []entity.PartEntry
	Checklist  []invoice.SectionView
	Resumen    invoice.Summary
	GeneradoEn time.Time
}

// ReportRenderer genera el PDF del motor.
type ReportRenderer interface {
	RenderMotorReport(ctx context.Context, r MotorReport) ([]byte, error)
}

// ReportArchive guarda los PDFs generados para descargarlos luego.
type ReportArchive interface {
	Save(prefix string, data []byte) (name string, err error)
	Open(name string) ([]byte, error)
}

// ShareLinker compone el mensaje y el enlace de WhatsApp del resumen.
type ShareLinker interface {
	Message(m entity.Motor, s invoice.Summary) string
	Link(phone, message string) string
}

// Mailer envía el PDF por correo.
type Mailer interface {
	Enabled() bool
	SendReport(ctx context.Context, to, subject, body, filename string, pdf []byte) error
}

// HistoryRow es una fila del historial exportado.
type HistoryRow struct {
	Motor   entity.Motor
	Estado  string
	Resumen invoice.Summary
}

// HistoryExporter genera la hoja de cálculo del historial.
type HistoryExporter interface {
	ExportHistory(rows []HistoryRow) ([]byte, error)
}
