package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/auth"
	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
)

// NotificationHandler envío y buzón de notificaciones.
type NotificationHandler struct {
	uc     *usecase.NotificationUseCase
	authUC *auth.AuthUseCase
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *usecase.NotificationUseCase, authUC *auth.AuthUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc, authUC: authUC}
}

// Send envía un aviso a socios (solo admin).
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var in dto.SendNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	sender, err := h.authUC.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Send(c.Context(), resolveCooperativeID(c), GetUserID(c), sender.Name, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "notificación enviada"))
}

// History devuelve las notificaciones enviadas con su alcance (solo admin).
func (h *NotificationHandler) History(c *fiber.Ctx) error {
	items, err := h.uc.History(c.Context(), resolveCooperativeID(c), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(items))
}

// Inbox devuelve el buzón del usuario; ?unread=true filtra no leídas.
func (h *NotificationHandler) Inbox(c *fiber.Ctx) error {
	items, err := h.uc.ForUser(c.Context(), GetUserID(c), c.QueryInt("limit", 20), c.QueryBool("unread", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(items))
}

// MarkRead marca una notificación como leída.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(nil, "notificación leída"))
}

// MarkAllRead marca todo el buzón como leído.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(nil, "buzón actualizado"))
}

// UnreadCount devuelve el contador para la campana del header.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.uc.UnreadCount(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.UnreadCountDTO{Count: count}))
}
