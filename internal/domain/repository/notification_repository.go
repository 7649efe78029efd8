package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// NotificationHistoryItem es una notificación enviada junto con su alcance.
type NotificationHistoryItem struct {
	Notification   entity.Notification
	RecipientCount int
	ReadCount      int
}

// UserNotification es una notificación vista desde el buzón de un usuario.
type UserNotification struct {
	Notification entity.Notification
	DeliveryID   string
	IsRead       bool
}

// NotificationRepository persistencia de notificaciones y sus entregas.
type NotificationRepository interface {
	// CreateWithDeliveries inserta la notificación y una entrega por destinatario
	// en una sola transacción.
	CreateWithDeliveries(ctx context.Context, n *entity.Notification, recipientIDs []string) error
	History(ctx context.Context, cooperativeID string, limit int) ([]*NotificationHistoryItem, error)
	ListForUser(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*UserNotification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}
