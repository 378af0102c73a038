package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// ExportHandler genera y entrega los PDFs del motor.
type ExportHandler struct {
	uc *taller.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *taller.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar PDF
// @Description  Guarda las medidas, genera el PDF, lo archiva 24h y arma el enlace de WhatsApp.
// @Tags         exportar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del motor"
// @Param        body  body  dto.ExportRequest  true  "Medidas y teléfono"
// @Success      201   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/exportar [post]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ExportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Export(c.Context(), motorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Email godoc
// @Summary      Enviar PDF por correo
// @Tags         exportar
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                     true  "ID del motor"
// @Param        body  body  dto.EmailExportRequest  true  "Destinatario"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/exportar/email [post]
func (h *ExportHandler) Email(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.EmailExportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.Email(c.Context(), motorID, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Download godoc
// @Summary      Descargar PDF archivado
// @Tags         exportar
// @Security     Bearer
// @Produce      application/pdf
// @Param        nombre  path  string  true  "Nombre devuelto por /exportar"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exportaciones/{nombre} [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	name := c.Params("nombre")
	data, err := h.uc.Download(name)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
