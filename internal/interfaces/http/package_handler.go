package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// PackageHandler maneja las peticiones HTTP para bultos.
type PackageHandler struct {
	uc *usecase.PackageUseCase
}

// NewPackageHandler construye el handler.
func NewPackageHandler(uc *usecase.PackageUseCase) *PackageHandler {
	return &PackageHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bulto
// @Tags         packages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePackageRequest  true  "Datos del bulto"
// @Success      201   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "create_package", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle del bulto (detalles, entrada, salida, movimientos)
// @Tags         packages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bulto"
// @Success      200  {object}  dto.PackageDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id} [get]
func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "bulto")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_package", err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bultos
// @Tags         packages
// @Security     Bearer
// @Produce      json
// @Param        location   query  string  false  "Ubicación exacta"
// @Param        state_id   query  string  false  "Estado"
// @Param        has_entry  query  bool    false  "Con / sin entrada"
// @Param        has_exit   query  bool    false  "Con / sin salida"
// @Success      200  {object}  dto.PackageListResponse
// @Router       /api/packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	var in dto.PackageFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_packages", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bulto
// @Tags         packages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bulto"
// @Param        body  body  dto.UpdatePackageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PackageResponse
// @Router       /api/packages/{id} [put]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "bulto")
	if !ok {
		return err
	}
	var in dto.UpdatePackageRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "update_package", err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bulto (revierte su entrada o salida)
// @Tags         packages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bulto"
// @Success      200  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ResultResponse
// @Router       /api/packages/{id} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "bulto")
	if !ok {
		return err
	}
	err = h.uc.Delete(c.UserContext(), id)
	return stockResult(c, stock.OpDeletePackage, fiber.StatusOK, "Bulto eliminado correctamente.", nil, err)
}

// EntryOptions godoc
// @Summary      Bultos elegibles para una entrada
// @Tags         packages
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PackageOptionsResponse
// @Router       /api/packages/options/entry [get]
func (h *PackageHandler) EntryOptions(c *fiber.Ctx) error {
	out, err := h.uc.EntryOptions(c.UserContext())
	if err != nil {
		return fail(c, "entry_options", err)
	}
	return c.JSON(out)
}

// ExitOptions godoc
// @Summary      Bultos elegibles para una salida
// @Tags         packages
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PackageOptionsResponse
// @Router       /api/packages/options/exit [get]
func (h *PackageHandler) ExitOptions(c *fiber.Ctx) error {
	out, err := h.uc.ExitOptions(c.UserContext())
	if err != nil {
		return fail(c, "exit_options", err)
	}
	return c.JSON(out)
}
