package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
)

// SettingsHandler preferencias de la cooperativa e integración Odoo.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler de configuración.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get devuelve las preferencias de la cooperativa.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.uc.Get(c.Context(), resolveCooperativeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(settings))
}

// UpdateNotifications actualiza las preferencias de avisos.
func (h *SettingsHandler) UpdateNotifications(c *fiber.Ctx) error {
	var in dto.UpdateNotificationSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	settings, err := h.uc.UpdateNotifications(c.Context(), resolveCooperativeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(settings, "preferencias actualizadas"))
}

// UpdateSecurity actualiza las preferencias de seguridad.
func (h *SettingsHandler) UpdateSecurity(c *fiber.Ctx) error {
	var in dto.UpdateSecuritySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	settings, err := h.uc.UpdateSecurity(c.Context(), resolveCooperativeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(settings, "preferencias actualizadas"))
}

// UpdateBackups actualiza las preferencias de respaldo.
func (h *SettingsHandler) UpdateBackups(c *fiber.Ctx) error {
	var in dto.UpdateBackupSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	settings, err := h.uc.UpdateBackups(c.Context(), resolveCooperativeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(settings, "preferencias actualizadas"))
}

// OdooStatus estado de la integración con Odoo.
func (h *SettingsHandler) OdooStatus(c *fiber.Ctx) error {
	status, err := h.uc.OdooStatus(c.Context(), resolveCooperativeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(status))
}

// SaveOdooConfig guarda las credenciales de Odoo.
func (h *SettingsHandler) SaveOdooConfig(c *fiber.Ctx) error {
	var in dto.OdooConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.URL == "" || in.Database == "" || in.Username == "" || in.APIKey == "" {
		return badRequest(c, "url, database, username y apiKey son requeridos")
	}
	if err := h.uc.SaveOdooConfig(c.Context(), resolveCooperativeID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(nil, "configuración de Odoo guardada"))
}

// TestOdoo prueba las credenciales contra el servidor Odoo sin persistirlas.
func (h *SettingsHandler) TestOdoo(c *fiber.Ctx) error {
	var in dto.OdooConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	return c.JSON(dto.OK(h.uc.TestOdoo(c.Context(), in)))
}
