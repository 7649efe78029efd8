package dto

import "time"

// SendNotificationRequest envío de un aviso a socios de la cooperativa.
type SendNotificationRequest struct {
	Title           string   `json:"title"`
	Message         string   `json:"message"`
	RecipientType   string   `json:"recipientType"` // all | with_debt | specific
	SpecificUserIDs []string `json:"specificUserIds,omitempty"`
}

// SendNotificationResponse identificador y alcance del envío.
type SendNotificationResponse struct {
	ID             string `json:"id"`
	RecipientCount int    `json:"recipientCount"`
}

// NotificationDTO notificación vista desde el buzón del usuario.
type NotificationDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SenderName string    `json:"senderName"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationHistoryDTO notificación enviada con métricas de alcance y lectura.
type NotificationHistoryDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	SenderName     string    `json:"senderName"`
	RecipientType  string    `json:"recipientType"`
	RecipientCount int       `json:"recipientCount"`
	ReadCount      int       `json:"readCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UnreadCountDTO contador de notificaciones no leídas.
type UnreadCountDTO struct {
	Count int `json:"count"`
}
