package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
)

// UserHandler administración de usuarios de la cooperativa (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List lista los usuarios con filtro ?search= por nombre o email.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.Context(), resolveCooperativeID(c), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(users))
}

// Create da de alta un usuario; devuelve la contraseña temporal una única vez.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), resolveCooperativeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "usuario creado"))
}

// ChangeRole cambia el rol de un usuario.
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	user, err := h.uc.ChangeRole(c.Context(), resolveCooperativeID(c), c.Params("id"), in.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(user, "rol actualizado"))
}

// ChangeStatus activa o desactiva un usuario.
func (h *UserHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	user, err := h.uc.ChangeStatus(c.Context(), resolveCooperativeID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(user, "estado actualizado"))
}

// ResetPassword genera una contraseña temporal nueva para el usuario.
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	out, err := h.uc.ResetPassword(c.Context(), resolveCooperativeID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(out, "contraseña restablecida"))
}
