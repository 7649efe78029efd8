package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotificationRepo struct {
	created    *entity.Notification
	recipients []string
}

func (r *fakeNotificationRepo) CreateWithDeliveries(_ context.Context, n *entity.Notification, recipientIDs []string) error {
	r.created = n
	r.recipients = recipientIDs
	return nil
}
func (r *fakeNotificationRepo) History(_ context.Context, _ string, _ int) ([]*repository.NotificationHistoryItem, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) ListForUser(_ context.Context, _ string, _ int, _ bool) ([]*repository.UserNotification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) MarkRead(_ context.Context, _, _ string) error { return nil }
func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, _ string) error { return nil }
func (r *fakeNotificationRepo) UnreadCount(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type fakeNotifUserRepo struct {
	activeIDs []string // padrón activo (envíos "all")
	allIDs    []string // padrón completo, incluye inactivos (validación "specific")
}

func (r *fakeNotifUserRepo) Create(_ context.Context, _ *entity.User) error         { return nil }
func (r *fakeNotifUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeNotifUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeNotifUserRepo) Update(_ context.Context, _ *entity.User) error        { return nil }
func (r *fakeNotifUserRepo) UpdateLastLogin(_ context.Context, _ string) error     { return nil }
func (r *fakeNotifUserRepo) ListByCooperative(_ context.Context, _, _ string) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeNotifUserRepo) ListIDsByCooperative(_ context.Context, _ string, onlyActive bool) ([]string, error) {
	if onlyActive {
		return r.activeIDs, nil
	}
	return r.allIDs, nil
}

type fakeNotifFeeRepo struct {
	debtorIDs []string
}

func (r *fakeNotifFeeRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]*entity.MembershipFee, error) {
	return nil, nil
}
func (r *fakeNotifFeeRepo) ListByMember(_ context.Context, _, _ string, _ int) ([]*entity.MembershipFee, error) {
	return nil, nil
}
func (r *fakeNotifFeeRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, _ []*entity.MembershipFee) error {
	return nil
}
func (r *fakeNotifFeeRepo) InsertPeriod(_ context.Context, _ string, _, _ int, _ []*entity.MembershipFee) error {
	return nil
}
func (r *fakeNotifFeeRepo) HasPeriod(_ context.Context, _ string, _, _ int) (bool, error) {
	return false, nil
}
func (r *fakeNotifFeeRepo) MemberIDsWithDebt(_ context.Context, _ string, _, _ int) ([]string, error) {
	return r.debtorIDs, nil
}

type fakePublisher struct {
	notificationID string
	recipients     []string
	err            error
}

func (p *fakePublisher) PublishNotification(_ context.Context, notificationID string, recipientIDs []string) error {
	p.notificationID = notificationID
	p.recipients = recipientIDs
	return p.err
}

func newNotificationFixture(users *fakeNotifUserRepo, fees *fakeNotifFeeRepo, pub usecase.MailQueuePublisher) (*usecase.NotificationUseCase, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return usecase.NewNotificationUseCase(repo, users, fees, pub), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Send — resolución de destinatarios
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_ATodos_UsaUsuariosActivos(t *testing.T) {
	users := &fakeNotifUserRepo{activeIDs: []string{"u1", "u2", "u3"}}
	pub := &fakePublisher{}
	uc, repo := newNotificationFixture(users, &fakeNotifFeeRepo{}, pub)

	out, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "Asamblea anual",
		Message:       "La asamblea es el 15 de septiembre",
		RecipientType: entity.RecipientAll,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.RecipientCount)
	assert.Equal(t, []string{"u1", "u2", "u3"}, repo.recipients)
	assert.Equal(t, repo.created.ID, pub.notificationID, "el envío se publica al broker de correo")
}

func TestSend_ConDeuda_UsaMorosos(t *testing.T) {
	fees := &fakeNotifFeeRepo{debtorIDs: []string{"u9"}}
	uc, repo := newNotificationFixture(&fakeNotifUserRepo{}, fees, nil)

	out, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "Recordatorio de aporte",
		Message:       "Tiene un aporte pendiente",
		RecipientType: entity.RecipientWithDebt,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.RecipientCount)
	assert.Equal(t, []string{"u9"}, repo.recipients)
}

func TestSend_Especificos_ListaExplicita(t *testing.T) {
	users := &fakeNotifUserRepo{allIDs: []string{"u4", "u5", "u6"}}
	uc, repo := newNotificationFixture(users, &fakeNotifFeeRepo{}, nil)

	out, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:           "Aviso",
		Message:         "Mensaje dirigido",
		RecipientType:   entity.RecipientSpecific,
		SpecificUserIDs: []string{"u4", "u5"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RecipientCount)
	assert.Equal(t, []string{"u4", "u5"}, repo.recipients)
}

func TestSend_Especificos_UsuarioDeOtraCooperativa(t *testing.T) {
	users := &fakeNotifUserRepo{allIDs: []string{"u4", "u5"}}
	uc, repo := newNotificationFixture(users, &fakeNotifFeeRepo{}, nil)

	_, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:           "Aviso",
		Message:         "Mensaje dirigido",
		RecipientType:   entity.RecipientSpecific,
		SpecificUserIDs: []string{"u4", "ajeno-99"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un ID fuera del padrón de la cooperativa rechaza el envío completo")
	assert.Nil(t, repo.created)
}

func TestSend_EspecificosSinLista(t *testing.T) {
	uc, _ := newNotificationFixture(&fakeNotifUserRepo{}, &fakeNotifFeeRepo{}, nil)

	_, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "Aviso",
		Message:       "Mensaje",
		RecipientType: entity.RecipientSpecific,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSend_SinDestinatarios(t *testing.T) {
	uc, repo := newNotificationFixture(&fakeNotifUserRepo{}, &fakeNotifFeeRepo{}, nil)

	_, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "Aviso",
		Message:       "Mensaje",
		RecipientType: entity.RecipientAll, // la cooperativa no tiene usuarios activos
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, repo.created)
}

func TestSend_TituloVacio(t *testing.T) {
	uc, _ := newNotificationFixture(&fakeNotifUserRepo{activeIDs: []string{"u1"}}, &fakeNotifFeeRepo{}, nil)

	_, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "   ",
		Message:       "Mensaje",
		RecipientType: entity.RecipientAll,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSend_BrokerCaidoNoInvalidaElEnvio(t *testing.T) {
	users := &fakeNotifUserRepo{activeIDs: []string{"u1"}}
	pub := &fakePublisher{err: errors.New("broker inaccesible")}
	uc, repo := newNotificationFixture(users, &fakeNotifFeeRepo{}, pub)

	out, err := uc.Send(context.Background(), "coop-1", "admin-1", "Carla", dto.SendNotificationRequest{
		Title:         "Aviso",
		Message:       "Mensaje",
		RecipientType: entity.RecipientAll,
	})
	require.NoError(t, err, "el correo es best-effort: el envío en plataforma ya quedó registrado")
	assert.Equal(t, 1, out.RecipientCount)
	assert.NotNil(t, repo.created)
}
