package entity

import "time"

// Settings son las preferencias de la cooperativa. Una fila por cooperativa;
// si no existe se responden los valores por defecto.
type Settings struct {
	CooperativeID       string
	EmailNotifications  bool
	UploadNotifications bool
	PaymentReminders    bool
	TwoFactorAuth       bool
	SessionTimeout      bool
	AutoBackup          bool
	OdooURL             string
	OdooDatabase        string
	OdooUsername        string
	OdooAPIKey          string
	OdooLastSync        *time.Time
	UpdatedAt           time.Time
}

// DefaultSettings valores iniciales para una cooperativa sin configuración guardada.
func DefaultSettings(cooperativeID string) *Settings {
	return &Settings{
		CooperativeID:       cooperativeID,
		EmailNotifications:  true,
		UploadNotifications: true,
		PaymentReminders:    false,
		TwoFactorAuth:       false,
		SessionTimeout:      true,
		AutoBackup:          true,
	}
}
