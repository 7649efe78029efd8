package dto

import "time"

// SettingsResponse preferencias de la cooperativa agrupadas por sección.
type SettingsResponse struct {
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Backups       BackupSettings       `json:"backups"`
}

// NotificationSettings preferencias de avisos por correo.
type NotificationSettings struct {
	EmailNotifications  bool `json:"emailNotifications"`
	UploadNotifications bool `json:"uploadNotifications"`
	PaymentReminders    bool `json:"paymentReminders"`
}

// SecuritySettings preferencias de seguridad de la sesión.
type SecuritySettings struct {
	TwoFactorAuth  bool `json:"twoFactorAuth"`
	SessionTimeout bool `json:"sessionTimeout"`
}

// BackupSettings preferencias de respaldo.
type BackupSettings struct {
	AutoBackup bool `json:"autoBackup"`
}

// Requests de actualización parcial: los campos nil no se modifican.

// UpdateNotificationSettingsRequest actualización parcial de avisos.
type UpdateNotificationSettingsRequest struct {
	EmailNotifications  *bool `json:"emailNotifications,omitempty"`
	UploadNotifications *bool `json:"uploadNotifications,omitempty"`
	PaymentReminders    *bool `json:"paymentReminders,omitempty"`
}

// UpdateSecuritySettingsRequest actualización parcial de seguridad.
type UpdateSecuritySettingsRequest struct {
	TwoFactorAuth  *bool `json:"twoFactorAuth,omitempty"`
	SessionTimeout *bool `json:"sessionTimeout,omitempty"`
}

// UpdateBackupSettingsRequest actualización parcial de respaldos.
type UpdateBackupSettingsRequest struct {
	AutoBackup *bool `json:"autoBackup,omitempty"`
}

// OdooStatusResponse estado de la integración con Odoo.
type OdooStatusResponse struct {
	IsConnected bool       `json:"isConnected"`
	LastSync    *time.Time `json:"lastSync"`
}

// OdooConfigRequest credenciales de conexión a Odoo.
type OdooConfigRequest struct {
	URL      string `json:"url"`
	Database string `json:"database"`
	Username string `json:"username"`
	APIKey   string `json:"apiKey"`
}

// OdooTestResponse resultado de la prueba de conexión XML-RPC.
type OdooTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
