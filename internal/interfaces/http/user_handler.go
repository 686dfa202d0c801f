package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/usecase"
)

// UserHandler administración de usuarios y de sus concesiones de bodega (solo admin).
type UserHandler struct {
	auth   *auth.AuthUseCase
	users  *usecase.UserUseCase
	access *usecase.AccessUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(a *auth.AuthUseCase, users *usecase.UserUseCase, access *usecase.AccessUseCase) *UserHandler {
	return &UserHandler{auth: a, users: users, access: access}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.auth.CreateUser(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.users.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Warehouses bodegas concedidas a un usuario.
func (h *UserHandler) Warehouses(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c, "usuario no encontrado")
	}
	p := page(c)
	out, err := h.access.ListForUser(c.Context(), user.ID, user.Role, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GrantWarehouse godoc
// @Summary      Conceder acceso a una bodega
// @Tags         users
// @Security     Bearer
// @Param        id           path  string  true  "ID del usuario"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/warehouses/{warehouseId} [put]
func (h *UserHandler) GrantWarehouse(c *fiber.Ctx) error {
	if err := h.access.Grant(c.Context(), c.Params("id"), c.Params("warehouseId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevokeWarehouse retira el acceso; idempotente.
func (h *UserHandler) RevokeWarehouse(c *fiber.Ctx) error {
	if err := h.access.Revoke(c.Context(), c.Params("id"), c.Params("warehouseId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
