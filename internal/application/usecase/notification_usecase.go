package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// MailQueuePublisher publica el aviso para que el worker de correo lo entregue.
// La implementación AMQP vive en infrastructure/queue; nil deshabilita el envío
// de correos sin afectar las notificaciones en la plataforma.
type MailQueuePublisher interface {
	PublishNotification(ctx context.Context, notificationID string, recipientIDs []string) error
}

// NotificationUseCase envío y buzón de notificaciones.
type NotificationUseCase struct {
	repo      repository.NotificationRepository
	userRepo  repository.UserRepository
	feeRepo   repository.FeeRepository
	publisher MailQueuePublisher
}

// NewNotificationUseCase construye el caso de uso. publisher puede ser nil.
func NewNotificationUseCase(
	repo repository.NotificationRepository,
	userRepo repository.UserRepository,
	feeRepo repository.FeeRepository,
	publisher MailQueuePublisher,
) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, userRepo: userRepo, feeRepo: feeRepo, publisher: publisher}
}

// Send resuelve los destinatarios según recipientType, crea la notificación con
// sus entregas y publica al broker de correo si está configurado.
func (uc *NotificationUseCase) Send(
	ctx context.Context,
	cooperativeID, senderID, senderName string,
	in dto.SendNotificationRequest,
) (*dto.SendNotificationResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("%w: título y mensaje son requeridos", domain.ErrInvalidInput)
	}

	recipients, err := uc.resolveRecipients(ctx, cooperativeID, in)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: el envío no tiene destinatarios", domain.ErrInvalidInput)
	}

	n := &entity.Notification{
		ID:            uuid.New().String(),
		CooperativeID: cooperativeID,
		SenderID:      senderID,
		SenderName:    senderName,
		Title:         strings.TrimSpace(in.Title),
		Message:       strings.TrimSpace(in.Message),
		RecipientType: in.RecipientType,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.CreateWithDeliveries(ctx, n, recipients); err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		// El correo es best-effort: un broker caído no invalida el envío en plataforma.
		if err := uc.publisher.PublishNotification(ctx, n.ID, recipients); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID).Msg("publicar notificación al broker de correo")
		}
	}

	return &dto.SendNotificationResponse{ID: n.ID, RecipientCount: len(recipients)}, nil
}

// resolveRecipients traduce recipientType a una lista de user IDs:
// all = usuarios activos de la cooperativa; with_debt = socios con deuda en el
// mes en curso; specific = lista explícita, validada contra el padrón de la
// cooperativa para que un admin no pueda dirigir envíos a otra cooperativa.
func (uc *NotificationUseCase) resolveRecipients(ctx context.Context, cooperativeID string, in dto.SendNotificationRequest) ([]string, error) {
	switch in.RecipientType {
	case entity.RecipientAll:
		return uc.userRepo.ListIDsByCooperative(ctx, cooperativeID, true)
	case entity.RecipientWithDebt:
		now := finance.LastPeriods(time.Now(), 1)[0]
		return uc.feeRepo.MemberIDsWithDebt(ctx, cooperativeID, now.Year, now.Month)
	case entity.RecipientSpecific:
		if len(in.SpecificUserIDs) == 0 {
			return nil, fmt.Errorf("%w: specificUserIds es requerido", domain.ErrInvalidInput)
		}
		members, err := uc.userRepo.ListIDsByCooperative(ctx, cooperativeID, false)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(members))
		for _, id := range members {
			known[id] = true
		}
		for _, id := range in.SpecificUserIDs {
			if !known[id] {
				return nil, fmt.Errorf("%w: el usuario %q no pertenece a la cooperativa", domain.ErrInvalidInput, id)
			}
		}
		return in.SpecificUserIDs, nil
	default:
		return nil, fmt.Errorf("%w: recipientType desconocido %q", domain.ErrInvalidInput, in.RecipientType)
	}
}

// History devuelve las notificaciones enviadas por la cooperativa con su alcance.
func (uc *NotificationUseCase) History(ctx context.Context, cooperativeID string, limit int) ([]dto.NotificationHistoryDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := uc.repo.History(ctx, cooperativeID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationHistoryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NotificationHistoryDTO{
			ID:             it.Notification.ID,
			Title:          it.Notification.Title,
			Message:        it.Notification.Message,
			SenderName:     it.Notification.SenderName,
			RecipientType:  it.Notification.RecipientType,
			RecipientCount: it.RecipientCount,
			ReadCount:      it.ReadCount,
			CreatedAt:      it.Notification.CreatedAt,
		})
	}
	return out, nil
}

// ForUser devuelve el buzón del usuario.
func (uc *NotificationUseCase) ForUser(ctx context.Context, userID string, limit int, unreadOnly bool) ([]dto.NotificationDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := uc.repo.ListForUser(ctx, userID, limit, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NotificationDTO{
			ID:         it.Notification.ID,
			Title:      it.Notification.Title,
			Message:    it.Notification.Message,
			SenderName: it.Notification.SenderName,
			IsRead:     it.IsRead,
			CreatedAt:  it.Notification.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación del buzón del usuario como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.repo.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marca todo el buzón del usuario como leído.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.repo.MarkAllRead(ctx, userID)
}

// UnreadCount devuelve el contador para la campana del header.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	return uc.repo.UnreadCount(ctx, userID)
}
