package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// CatalogHandler CRUD HTTP para categorías, almacenamientos especiales y estados de bulto.
type CatalogHandler[T any] struct {
	uc    *usecase.CatalogUseCase[T]
	key   string // category, special_storage, package_state (logs)
	label string // nombre en mensajes de error
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler[T any](uc *usecase.CatalogUseCase[T], key, label string) *CatalogHandler[T] {
	return &CatalogHandler[T]{uc: uc, key: key, label: label}
}

// Create crea un elemento.
func (h *CatalogHandler[T]) Create(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "create_"+h.key, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un elemento.
func (h *CatalogHandler[T]) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, h.label)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_"+h.key, err)
	}
	return c.JSON(out)
}

// List lista con paginación.
func (h *CatalogHandler[T]) List(c *fiber.Ctx) error {
	var in dto.PageRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_"+h.key, err)
	}
	return c.JSON(out)
}

// Update renombra un elemento.
func (h *CatalogHandler[T]) Update(c *fiber.Ctx) error {
	id, ok, err := idParam(c, h.label)
	if !ok {
		return err
	}
	var in dto.CatalogRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "update_"+h.key, err)
	}
	return c.JSON(out)
}

// Delete elimina un elemento sin referencias.
func (h *CatalogHandler[T]) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, h.label)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, "delete_"+h.key, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
