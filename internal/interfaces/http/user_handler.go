package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// UserHandler administración de usuarios y roles (solo admin).
type UserHandler struct {
	users *usecase.UserUseCase
	roles *usecase.RoleUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, roles *usecase.RoleUseCase) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "create_user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "usuario")
	if !ok {
		return err
	}
	out, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, "get_user", err)
	}
	return c.JSON(out)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.PageRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.users.List(c.UserContext(), in)
	if err != nil {
		return fail(c, "list_users", err)
	}
	return c.JSON(out)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "usuario")
	if !ok {
		return err
	}
	var in dto.UpdateUserRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.users.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "update_user", err)
	}
	return c.JSON(out)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "usuario")
	if !ok {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return fail(c, "delete_user", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoles lista los roles disponibles.
func (h *UserHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.roles.List(c.UserContext())
	if err != nil {
		return fail(c, "list_roles", err)
	}
	return c.JSON(out)
}

func (h *UserHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.roles.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "create_role", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "rol")
	if !ok {
		return err
	}
	var in dto.CatalogRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.roles.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "update_role", err)
	}
	return c.JSON(out)
}

func (h *UserHandler) DeleteRole(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "rol")
	if !ok {
		return err
	}
	if err := h.roles.Delete(c.UserContext(), id); err != nil {
		return fail(c, "delete_role", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
