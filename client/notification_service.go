package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// NotificationService envío de avisos y buzón del usuario.
type NotificationService struct {
	c *Client
}

// Send envía un aviso a socios de la cooperativa (solo admin).
func (s *NotificationService) Send(ctx context.Context, cooperativeID string, in SendNotificationInput) (*SendNotificationResult, error) {
	var out SendNotificationResult
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/notifications/send", coopQuery(cooperativeID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History devuelve los envíos con métricas de alcance y lectura (solo admin).
func (s *NotificationService) History(ctx context.Context, cooperativeID string, limit int) ([]NotificationHistoryItem, error) {
	q := coopQuery(cooperativeID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []NotificationHistoryItem
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/notifications/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Inbox devuelve el buzón del usuario; unreadOnly filtra las no leídas.
func (s *NotificationService) Inbox(ctx context.Context, limit int, unreadOnly bool) ([]Notification, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if unreadOnly {
		q.Set("unread", "true")
	}
	var out []Notification
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/notifications", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.c.doJSON(ctx, http.MethodPut, "/api/notifications/"+notificationID+"/read", nil, nil, nil)
}

// MarkAllRead marca todo el buzón como leído.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.c.doJSON(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil, nil)
}

// UnreadCount devuelve el contador para la campana del header.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/notifications/unread-count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
