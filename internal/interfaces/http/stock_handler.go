package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StockHandler expone detalles de bulto, entradas y salidas. Las escrituras responden
// con el sobre {success, message} que consume la UI.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ── Detalles de bulto ─────────────────────────────────────────────────────────

// CreateLineItem godoc
// @Summary      Agregar detalle a un bulto
// @Tags         line-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLineItemRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.ResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ResultResponse
// @Router       /api/line-items [post]
func (h *StockHandler) CreateLineItem(c *fiber.Ctx) error {
	var in dto.CreateLineItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateLineItem(c.UserContext(), in)
	return stockResult(c, stock.OpCreateLineItem, fiber.StatusCreated, "Detalle agregado correctamente.", out, err)
}

// UpdateLineItem godoc
// @Summary      Editar detalle de bulto
// @Tags         line-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del detalle"
// @Param        body  body  dto.UpdateLineItemRequest  true  "Datos del detalle"
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/line-items/{id} [put]
func (h *StockHandler) UpdateLineItem(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "detalle")
	if !ok {
		return err
	}
	var in dto.UpdateLineItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateLineItem(c.UserContext(), id, in)
	return stockResult(c, stock.OpEditLineItem, fiber.StatusOK, "Detalle actualizado correctamente.", out, err)
}

// DeleteLineItem godoc
// @Summary      Eliminar detalle de bulto
// @Tags         line-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del detalle"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/line-items/{id} [delete]
func (h *StockHandler) DeleteLineItem(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "detalle")
	if !ok {
		return err
	}
	err = h.uc.DeleteLineItem(c.UserContext(), id)
	return stockResult(c, stock.OpDeleteLineItem, fiber.StatusOK, "Detalle eliminado correctamente.", nil, err)
}

// GetLineItem obtiene un detalle.
func (h *StockHandler) GetLineItem(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "detalle")
	if !ok {
		return err
	}
	out, err := h.uc.GetLineItem(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_line_item", err)
	}
	return c.JSON(out)
}

// ListLineItems lista detalles.
func (h *StockHandler) ListLineItems(c *fiber.Ctx) error {
	var in dto.LineItemFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListLineItems(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_line_items", err)
	}
	return c.JSON(out)
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// CreateEntry godoc
// @Summary      Registrar entrada de un bulto
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "Bulto y fecha"
// @Success      201   {object}  dto.ResultResponse
// @Failure      409   {object}  dto.ResultResponse
// @Failure      422   {object}  dto.ResultResponse
// @Router       /api/entries [post]
func (h *StockHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateEntry(c.UserContext(), GetUserID(c), in)
	return stockResult(c, stock.OpCreateEntry, fiber.StatusCreated, "Entrada registrada correctamente.", out, err)
}

// UpdateEntry godoc
// @Summary      Editar entrada
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada"
// @Param        body  body  dto.UpdateRecordRequest  true  "Bulto y fecha"
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/entries/{id} [put]
func (h *StockHandler) UpdateEntry(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "entrada")
	if !ok {
		return err
	}
	var in dto.UpdateRecordRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateEntry(c.UserContext(), id, GetUserID(c), in)
	return stockResult(c, stock.OpEditEntry, fiber.StatusOK, "Entrada actualizada correctamente.", out, err)
}

// DeleteEntry godoc
// @Summary      Eliminar entrada (resta el stock del bulto)
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/entries/{id} [delete]
func (h *StockHandler) DeleteEntry(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "entrada")
	if !ok {
		return err
	}
	err = h.uc.DeleteEntry(c.UserContext(), id)
	return stockResult(c, stock.OpDeleteEntry, fiber.StatusOK, "Entrada eliminada correctamente.", nil, err)
}

// GetEntry obtiene una entrada.
func (h *StockHandler) GetEntry(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "entrada")
	if !ok {
		return err
	}
	out, err := h.uc.GetEntry(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_entry", err)
	}
	return c.JSON(out)
}

// ListEntries lista entradas por usuario y bulto.
func (h *StockHandler) ListEntries(c *fiber.Ctx) error {
	var in dto.RecordFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListEntries(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_entries", err)
	}
	return c.JSON(out)
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateExit godoc
// @Summary      Registrar salida de un bulto
// @Tags         exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "Bulto y fecha"
// @Success      201   {object}  dto.ResultResponse
// @Failure      409   {object}  dto.ResultResponse
// @Router       /api/exits [post]
func (h *StockHandler) CreateExit(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateExit(c.UserContext(), GetUserID(c), in)
	return stockResult(c, stock.OpCreateExit, fiber.StatusCreated, "Salida registrada correctamente.", out, err)
}

// UpdateExit godoc
// @Summary      Editar salida
// @Tags         exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.UpdateRecordRequest  true  "Bulto y fecha"
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/exits/{id} [put]
func (h *StockHandler) UpdateExit(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "salida")
	if !ok {
		return err
	}
	var in dto.UpdateRecordRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateExit(c.UserContext(), id, GetUserID(c), in)
	return stockResult(c, stock.OpEditExit, fiber.StatusOK, "Salida actualizada correctamente.", out, err)
}

// DeleteExit godoc
// @Summary      Eliminar salida (devuelve el stock del bulto)
// @Tags         exits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/exits/{id} [delete]
func (h *StockHandler) DeleteExit(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "salida")
	if !ok {
		return err
	}
	err = h.uc.DeleteExit(c.UserContext(), id)
	return stockResult(c, stock.OpDeleteExit, fiber.StatusOK, "Salida eliminada correctamente.", nil, err)
}

// GetExit obtiene una salida.
func (h *StockHandler) GetExit(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "salida")
	if !ok {
		return err
	}
	out, err := h.uc.GetExit(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_exit", err)
	}
	return c.JSON(out)
}

// ListExits lista salidas por usuario y bulto.
func (h *StockHandler) ListExits(c *fiber.Ctx) error {
	var in dto.RecordFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListExits(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_exits", err)
	}
	return c.JSON(out)
}
