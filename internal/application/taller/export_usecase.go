package taller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/pkg/logger"
)

// ExportUseCase genera el PDF del motor, lo archiva y arma el enlace para compartirlo.
type ExportUseCase struct {
	repos    Repos
	fetcher  *MotorFetcher
	agg      *invoice.Aggregator
	renderer ReportRenderer
	archive  ReportArchive
	share    ShareLinker
	mailer   Mailer
	taller   string
	log      *logger.Logger
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso. mailer puede ser nil (envío deshabilitado).
func NewExportUseCase(
	repos Repos,
	fetcher *MotorFetcher,
	agg *invoice.Aggregator,
	renderer ReportRenderer,
	archive ReportArchive,
	share ShareLinker,
	mailer Mailer,
	taller string,
	log *logger.Logger,
) *ExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportUseCase{
		repos:    repos,
		fetcher:  fetcher,
		agg:      agg,
		renderer: renderer,
		archive:  archive,
		share:    share,
		mailer:   mailer,
		taller:   taller,
		log:      log,
		now:      time.Now,
	}
}

// WithClock fija el reloj usado en la fecha del reporte.
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// Export guarda las medidas enviadas, genera el PDF, lo archiva y compone el
// mensaje de WhatsApp. Se exige al menos una medida (bloque, biela o bancada).
// Las medidas de un motor finalizado no se modifican: se exporta con las guardadas.
func (uc *ExportUseCase) Export(ctx context.Context, motorID int64, in dto.ExportRequest) (*dto.ExportResponse, error) {
	agg, err := loadAggregate(ctx, uc.fetcher, uc.repos, motorID)
	if err != nil {
		return nil, err
	}
	m := agg.motor
	if m.CanModify() && hasMedidas(in) {
		m.MedidaBloque = strings.TrimSpace(in.MedidaBloque)
		m.MedidaBiela = strings.TrimSpace(in.MedidaBiela)
		m.MedidaBancada = strings.TrimSpace(in.MedidaBancada)
		m.MedidaCiguenal = strings.TrimSpace(in.MedidaCiguenal)
		if err := validateMedidas(m); err != nil {
			return nil, err
		}
		if err := uc.repos.Motors.Update(ctx, m); err != nil {
			return nil, fmt.Errorf("guardar medidas: %w", err)
		}
	}
	if !m.HasMedidas() {
		return nil, fmt.Errorf("%w: debe registrar al menos una medida (bloque, biela o bancada)", domain.ErrInvalidInput)
	}

	report, pdf, err := uc.render(ctx, agg)
	if err != nil {
		return nil, err
	}
	name, err := uc.archive.Save("motor_"+m.NumeroSerie, pdf)
	if err != nil {
		return nil, fmt.Errorf("archivar pdf: %w", err)
	}

	msg := uc.share.Message(*m, report.Resumen)
	phone := strings.TrimSpace(in.Telefono)
	if phone == "" {
		phone = m.MecanicoTelefono
	}
	uc.log.Info().Int64("motor_id", m.ID).Str("archivo", name).Int("bytes", len(pdf)).Msg("pdf exportado")
	return &dto.ExportResponse{
		Archivo:     name,
		URL:         "/api/exportaciones/" + name,
		WhatsAppURL: uc.share.Link(phone, msg),
		Mensaje:     msg,
		Total:       report.Resumen.Total,
	}, nil
}

// Email genera el PDF y lo envía como adjunto.
func (uc *ExportUseCase) Email(ctx context.Context, motorID int64, in dto.EmailExportRequest) error {
	if uc.mailer == nil || !uc.mailer.Enabled() {
		return fmt.Errorf("%w: envío de correo no configurado", domain.ErrUnavailable)
	}
	agg, err := loadAggregate(ctx, uc.fetcher, uc.repos, motorID)
	if err != nil {
		return err
	}
	report, pdf, err := uc.render(ctx, agg)
	if err != nil {
		return err
	}
	subject := strings.TrimSpace(in.Asunto)
	if subject == "" {
		subject = fmt.Sprintf("%s - Motor %s", uc.taller, agg.motor.NumeroSerie)
	}
	body := uc.share.Message(*agg.motor, report.Resumen)
	filename := fmt.Sprintf("motor_%s.pdf", agg.motor.NumeroSerie)
	if err := uc.mailer.SendReport(ctx, in.Para, subject, body, filename, pdf); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	uc.log.Info().Int64("motor_id", motorID).Str("para", in.Para).Msg("pdf enviado por correo")
	return nil
}

// Download devuelve un PDF archivado.
func (uc *ExportUseCase) Download(name string) ([]byte, error) {
	return uc.archive.Open(name)
}

func (uc *ExportUseCase) render(ctx context.Context, agg *motorAggregate) (MotorReport, []byte, error) {
	report := MotorReport{
		Taller:     uc.taller,
		Motor:      *agg.motor,
		Trabajos:   agg.works,
		Items:      agg.parts,
		Checklist:  uc.agg.BuildChecklistView(agg.checklist),
		Resumen:    uc.agg.ComputeSummary(agg.works, agg.parts, agg.motor.IncluirIVA, invoice.ConfirmedOnly),
		GeneradoEn: uc.now(),
	}
	pdf, err := uc.renderer.RenderMotorReport(ctx, report)
	if err != nil {
		return report, nil, fmt.Errorf("generar pdf: %w", err)
	}
	return report, pdf, nil
}

func hasMedidas(in dto.ExportRequest) bool {
	return strings.TrimSpace(in.MedidaBloque) != "" ||
		strings.TrimSpace(in.MedidaBiela) != "" ||
		strings.TrimSpace(in.MedidaBancada) != ""
}
