package entity

import "time"

// Acciones registradas en la bitácora de actividad del usuario.
const (
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionPasswordChanged = "password_changed"
	ActionUpload          = "upload"
	ActionExport          = "export"
)

// ActivityLog es una entrada de la bitácora de actividad de un usuario.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}
