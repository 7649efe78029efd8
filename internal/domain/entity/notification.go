package entity

import "time"

// Tipos de destinatario para el envío de notificaciones.
const (
	RecipientAll      = "all"
	RecipientWithDebt = "with_debt"
	RecipientSpecific = "specific"
)

// Notification es un aviso enviado por un administrador a socios de la cooperativa.
type Notification struct {
	ID            string
	CooperativeID string
	SenderID      string
	SenderName    string
	Title         string
	Message       string
	RecipientType string // all, with_debt, specific
	CreatedAt     time.Time
}

// NotificationDelivery es la entrega individual de una notificación a un usuario,
// con su estado de lectura.
type NotificationDelivery struct {
	ID             string
	NotificationID string
	UserID         string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
