package client

import (
	"context"
	"net/http"
)

// SettingsService preferencias de la cooperativa e integración Odoo (solo admin).
type SettingsService struct {
	c *Client
}

// Get devuelve las preferencias de la cooperativa.
func (s *SettingsService) Get(ctx context.Context, cooperativeID string) (*Settings, error) {
	var out Settings
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/settings", coopQuery(cooperativeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotifications actualización parcial de avisos; campos nil no cambian.
func (s *SettingsService) UpdateNotifications(ctx context.Context, cooperativeID string, emailNotifications, uploadNotifications, paymentReminders *bool) (*Settings, error) {
	body := map[string]*bool{
		"emailNotifications":  emailNotifications,
		"uploadNotifications": uploadNotifications,
		"paymentReminders":    paymentReminders,
	}
	var out Settings
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/settings/notifications", coopQuery(cooperativeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSecurity actualización parcial de seguridad.
func (s *SettingsService) UpdateSecurity(ctx context.Context, cooperativeID string, twoFactorAuth, sessionTimeout *bool) (*Settings, error) {
	body := map[string]*bool{
		"twoFactorAuth":  twoFactorAuth,
		"sessionTimeout": sessionTimeout,
	}
	var out Settings
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/settings/security", coopQuery(cooperativeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBackups actualización parcial de respaldos.
func (s *SettingsService) UpdateBackups(ctx context.Context, cooperativeID string, autoBackup *bool) (*Settings, error) {
	body := map[string]*bool{"autoBackup": autoBackup}
	var out Settings
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/settings/backups", coopQuery(cooperativeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OdooStatus estado de la integración con Odoo.
func (s *SettingsService) OdooStatus(ctx context.Context, cooperativeID string) (*OdooStatus, error) {
	var out OdooStatus
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/settings/odoo/status", coopQuery(cooperativeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveOdooConfig guarda las credenciales de Odoo.
func (s *SettingsService) SaveOdooConfig(ctx context.Context, cooperativeID string, cfg OdooConfig) error {
	return s.c.doJSON(ctx, http.MethodPost, "/api/settings/odoo/config", coopQuery(cooperativeID), cfg, nil)
}

// TestOdoo prueba las credenciales sin persistirlas.
func (s *SettingsService) TestOdoo(ctx context.Context, cfg OdooConfig) (*OdooTestResult, error) {
	var out OdooTestResult
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/settings/odoo/test", nil, cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportFullData descarga el libro XLSX con los cuatro módulos del período.
func (s *SettingsService) ExportFullData(ctx context.Context, q ReportQuery) (*Blob, error) {
	return s.c.doBlob(ctx, "/api/settings/data/export", q.values())
}
