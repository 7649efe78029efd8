package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
)

// CooperativeHandler selector y ficha de la cooperativa.
type CooperativeHandler struct {
	uc *usecase.CooperativeUseCase
}

// NewCooperativeHandler construye el handler de cooperativas.
func NewCooperativeHandler(uc *usecase.CooperativeUseCase) *CooperativeHandler {
	return &CooperativeHandler{uc: uc}
}

// List devuelve las cooperativas visibles para el usuario (selector del header).
func (h *CooperativeHandler) List(c *fiber.Ctx) error {
	coops, err := h.uc.ListVisible(c.Context(), GetCooperativeID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(coops))
}

// Info devuelve la ficha de la cooperativa activa.
func (h *CooperativeHandler) Info(c *fiber.Ctx) error {
	info, err := h.uc.GetInfo(c.Context(), resolveCooperativeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(info))
}

// UpdateInfo actualiza la ficha de la cooperativa (solo admin).
func (h *CooperativeHandler) UpdateInfo(c *fiber.Ctx) error {
	var in dto.UpdateCooperativeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	info, err := h.uc.UpdateInfo(c.Context(), resolveCooperativeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(info, "cooperativa actualizada"))
}
