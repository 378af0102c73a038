package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// SummaryHandler expone el resumen financiero de un motor.
type SummaryHandler struct {
	uc *taller.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *taller.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// Get godoc
// @Summary      Resumen confirmado
// @Tags         resumen
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/resumen [get]
func (h *SummaryHandler) Get(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.Context(), motorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Resumen provisional
// @Description  Suma a los registros guardados los trabajos e ítems pendientes enviados. No persiste nada.
// @Tags         resumen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del motor"
// @Param        body  body  dto.PreviewSummaryRequest  true  "Registros pendientes"
// @Success      200   {object}  dto.SummaryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/resumen/preview [post]
func (h *SummaryHandler) Preview(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.PreviewSummaryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Preview(c.Context(), motorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
