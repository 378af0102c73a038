package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// MotorHandler maneja ingreso, consulta y ciclo de vida de motores.
type MotorHandler struct {
	uc *taller.MotorUseCase
}

// NewMotorHandler construye el handler.
func NewMotorHandler(uc *taller.MotorUseCase) *MotorHandler {
	return &MotorHandler{uc: uc}
}

// Intake godoc
// @Summary      Ingresar motor
// @Description  Crea el motor y su checklist en una sola transacción. La foto se normaliza a JPEG.
// @Tags         motores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeMotorRequest  true  "Datos del ingreso"
// @Success      201   {object}  dto.IntakeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/motores/entrada [post]
func (h *MotorHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeMotorRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Intake(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar motores activos
// @Tags         motores
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "En proceso | Finalizado"
// @Param        limit   query  int     false  "Límite (0 = todos)"
// @Param        offset  query  int     false  "Offset"
// @Success      200     {array}   dto.MotorResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/motores [get]
func (h *MotorHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 500 {
		page.Limit = 500
	}
	out, err := h.uc.List(c.Context(), c.Query("estado"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextNumber godoc
// @Summary      Siguiente número de motor
// @Tags         motores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextNumberResponse
// @Router       /api/motores/siguiente-numero [get]
func (h *MotorHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.NextNumber(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener motor
// @Description  Motor con trabajos, ítems, checklist y resumen confirmado.
// @Tags         motores
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {object}  dto.MotorDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id} [get]
func (h *MotorHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar motor
// @Tags         motores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del motor"
// @Param        body  body  dto.UpdateMotorRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MotorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/motores/{id} [put]
func (h *MotorHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateMotorRequest
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
// @Summary      Finalizar motor
// @Tags         motores
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del motor"
// @Success      200  {object}  dto.MotorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/finalizar [post]
func (h *MotorHandler) Finalize(c *fiber.Ctx) error {
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

// RegisterExit godoc
// @Summary      Registrar salida
// @Description  Finaliza el motor guardando las observaciones de entrega.
// @Tags         motores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del motor"
// @Param        body  body  dto.SalidaRequest  true  "Observaciones"
// @Success      200   {object}  dto.MotorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/motores/{id}/salida [post]
func (h *MotorHandler) RegisterExit(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.SalidaRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterExit(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar motor (borrado lógico)
// @Tags         motores
// @Security     Bearer
// @Param        id   path  int  true  "ID del motor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motores/{id} [delete]
func (h *MotorHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
