package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// MovementHandler traslados de bultos entre ubicaciones. No afectan el stock.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento (traslada el bulto al destino)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Bulto y destino"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, "create_movement", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un movimiento.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "movimiento")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_movement", err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        user_id        query  string  false  "Usuario"
// @Param        package_id     query  string  false  "Bulto"
// @Param        from_location  query  string  false  "Origen (contiene)"
// @Param        to_location    query  string  false  "Destino (contiene)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_movements", err)
	}
	return c.JSON(out)
}

// Update actualiza un movimiento y deja el bulto en el nuevo destino.
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "movimiento")
	if !ok {
		return err
	}
	var in dto.UpdateMovementRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "update_movement", err)
	}
	return c.JSON(out)
}

// Delete elimina un movimiento.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "movimiento")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, "delete_movement", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
