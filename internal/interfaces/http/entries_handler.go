package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// WorkHandler maneja los trabajos (mano de obra) de un motor.
type WorkHandler struct {
	uc *taller.WorkUseCase
}

// NewWorkHandler construye el handler.
func NewWorkHandler(uc *taller.WorkUseCase) *WorkHandler {
	return &WorkHandler{uc: uc}
}

// List godoc
// @Summary      Listar trabajos del motor
// @Tags         trabajos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {array}   dto.WorkEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/trabajos [get]
func (h *WorkHandler) List(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.List(c.Context(), motorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar trabajo
// @Tags         trabajos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del motor"
// @Param        body  body  dto.CreateWorkEntryRequest  true  "Trabajo"
// @Success      201   {object}  dto.WorkEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/trabajos [post]
func (h *WorkHandler) Create(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CreateWorkEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Mecanico == "" {
		in.Mecanico = GetUsuario(c)
	}
	out, err := h.uc.Create(c.Context(), motorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar trabajo
// @Tags         trabajos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del trabajo"
// @Param        body  body  dto.UpdateWorkEntryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.WorkEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id} [put]
func (h *WorkHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateWorkEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar trabajo
// @Tags         trabajos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del trabajo"
// @Success      200  {object}  dto.WorkEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id}/finalizar [post]
func (h *WorkHandler) Finalize(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Finalize(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar trabajo
// @Tags         trabajos
// @Security     Bearer
// @Param        id   path  int  true  "ID del trabajo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id} [delete]
func (h *WorkHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PartHandler maneja los ítems (repuestos) de un motor.
type PartHandler struct {
	uc *taller.PartUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *taller.PartUseCase) *PartHandler {
	return &PartHandler{uc: uc}
}

// List godoc
// @Summary      Listar ítems del motor
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {array}   dto.PartEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/items [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.List(c.Context(), motorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del motor"
// @Param        body  body  dto.CreatePartEntryRequest  true  "Ítem"
// @Success      201   {object}  dto.PartEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/items [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	motorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CreatePartEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), motorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Security     Bearer
// @Param        id   path  int  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
