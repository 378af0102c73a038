package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// ChecklistHandler maneja el checklist de componentes de ingreso.
type ChecklistHandler struct {
	uc *taller.ChecklistUseCase
}

// NewChecklistHandler construye el handler.
func NewChecklistHandler(uc *taller.ChecklistUseCase) *ChecklistHandler {
	return &ChecklistHandler{uc: uc}
}

// Get godoc
// @Summary      Checklist crudo del motor
// @Tags         checklist
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {array}   dto.ChecklistItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/checklist [get]
func (h *ChecklistHandler) Get(c *fiber.Ctx) error {
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

// Replace godoc
// @Summary      Reemplazar checklist
// @Description  Reemplazo completo: se borran las filas anteriores y se insertan las enviadas.
// @Tags         checklist
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del motor"
// @Param        body  body  dto.ReplaceChecklistRequest  true  "Filas"
// @Success      200   {array}   dto.ChecklistItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/checklist [put]
func (h *ChecklistHandler) Replace(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ReplaceChecklistRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Replace(c.Context(), motorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// View godoc
// @Summary      Vista normalizada del checklist
// @Description  Una marca por componente del catálogo, en dos columnas por sección.
// @Tags         checklist
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {array}   dto.ChecklistSectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/checklist/vista [get]
func (h *ChecklistHandler) View(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.View(c.Context(), motorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Catalog godoc
// @Summary      Catálogo de componentes
// @Tags         checklist
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogSectionResponse
// @Router       /api/checklist/catalogo [get]
func (h *ChecklistHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(h.uc.Catalog())
}
