package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository construye el adaptador de persistencia de notificaciones.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// CreateWithDeliveries inserta la notificación y una entrega por destinatario
// en una sola transacción.
func (r *NotificationRepo) CreateWithDeliveries(ctx context.Context, n *entity.Notification, recipientIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO notifications (id, cooperative_id, sender_id, title, message, recipient_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.CooperativeID, n.SenderID, n.Title, n.Message, n.RecipientType, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	for _, userID := range recipientIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO notification_deliveries (id, notification_id, user_id, is_read, created_at)
			VALUES ($1, $2, $3, FALSE, $4)`,
			uuid.New().String(), n.ID, userID, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// History devuelve las notificaciones enviadas por la cooperativa con su alcance.
func (r *NotificationRepo) History(ctx context.Context, cooperativeID string, limit int) ([]*repository.NotificationHistoryItem, error) {
	query := `
		SELECT n.id, n.cooperative_id, n.sender_id, u.name, n.title, n.message, n.recipient_type, n.created_at,
		       COUNT(d.id), COUNT(d.id) FILTER (WHERE d.is_read)
		FROM notifications n
		JOIN users u ON u.id = n.sender_id
		LEFT JOIN notification_deliveries d ON d.notification_id = n.id
		WHERE n.cooperative_id = $1
		GROUP BY n.id, u.name
		ORDER BY n.created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, cooperativeID, limit)
	if err != nil {
		return nil, fmt.Errorf("notification history: %w", err)
	}
	defer rows.Close()

	var list []*repository.NotificationHistoryItem
	for rows.Next() {
		var item repository.NotificationHistoryItem
		if err := rows.Scan(
			&item.Notification.ID, &item.Notification.CooperativeID, &item.Notification.SenderID,
			&item.Notification.SenderName, &item.Notification.Title, &item.Notification.Message,
			&item.Notification.RecipientType, &item.Notification.CreatedAt,
			&item.RecipientCount, &item.ReadCount,
		); err != nil {
			return nil, fmt.Errorf("scan notification history: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ListForUser devuelve el buzón del usuario, opcionalmente solo no leídas.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*repository.UserNotification, error) {
	query := `
		SELECT n.id, n.cooperative_id, n.sender_id, u.name, n.title, n.message, n.recipient_type, n.created_at,
		       d.id, d.is_read
		FROM notification_deliveries d
		JOIN notifications n ON n.id = d.notification_id
		JOIN users u ON u.id = n.sender_id
		WHERE d.user_id = $1 AND ($2 = FALSE OR d.is_read = FALSE)
		ORDER BY n.created_at DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list user notifications: %w", err)
	}
	defer rows.Close()

	var list []*repository.UserNotification
	for rows.Next() {
		var item repository.UserNotification
		if err := rows.Scan(
			&item.Notification.ID, &item.Notification.CooperativeID, &item.Notification.SenderID,
			&item.Notification.SenderName, &item.Notification.Title, &item.Notification.Message,
			&item.Notification.RecipientType, &item.Notification.CreatedAt,
			&item.DeliveryID, &item.IsRead,
		); err != nil {
			return nil, fmt.Errorf("scan user notification: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// MarkRead marca como leída la entrega de una notificación para el usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_deliveries SET is_read = TRUE, read_at = $3
		WHERE user_id = $1 AND notification_id = $2 AND is_read = FALSE`,
		userID, notificationID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas las entregas del usuario como leídas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_deliveries SET is_read = TRUE, read_at = $2
		WHERE user_id = $1 AND is_read = FALSE`,
		userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// UnreadCount devuelve la cantidad de notificaciones no leídas del usuario.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notification_deliveries WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}
