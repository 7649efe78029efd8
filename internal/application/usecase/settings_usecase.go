package usecase

import (
	"context"
	"time"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// OdooClient prueba la conexión con un servidor Odoo (XML-RPC).
// La implementación vive en infrastructure/odoo.
type OdooClient interface {
	TestConnection(ctx context.Context, url, database, username, apiKey string) (bool, string)
}

// SettingsUseCase preferencias de la cooperativa e integración Odoo.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	odoo OdooClient
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, odoo OdooClient) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, odoo: odoo}
}

// Get devuelve las preferencias; si la cooperativa nunca guardó, los defaults.
func (uc *SettingsUseCase) Get(ctx context.Context, cooperativeID string) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		Notifications: dto.NotificationSettings{
			EmailNotifications:  s.EmailNotifications,
			UploadNotifications: s.UploadNotifications,
			PaymentReminders:    s.PaymentReminders,
		},
		Security: dto.SecuritySettings{
			TwoFactorAuth:  s.TwoFactorAuth,
			SessionTimeout: s.SessionTimeout,
		},
		Backups: dto.BackupSettings{AutoBackup: s.AutoBackup},
	}, nil
}

// UpdateNotifications aplica cambios parciales a las preferencias de avisos.
func (uc *SettingsUseCase) UpdateNotifications(ctx context.Context, cooperativeID string, in dto.UpdateNotificationSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	applyBool(&s.EmailNotifications, in.EmailNotifications)
	applyBool(&s.UploadNotifications, in.UploadNotifications)
	applyBool(&s.PaymentReminders, in.PaymentReminders)
	return uc.save(ctx, s)
}

// UpdateSecurity aplica cambios parciales a las preferencias de seguridad.
func (uc *SettingsUseCase) UpdateSecurity(ctx context.Context, cooperativeID string, in dto.UpdateSecuritySettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	applyBool(&s.TwoFactorAuth, in.TwoFactorAuth)
	applyBool(&s.SessionTimeout, in.SessionTimeout)
	return uc.save(ctx, s)
}

// UpdateBackups aplica cambios parciales a las preferencias de respaldo.
func (uc *SettingsUseCase) UpdateBackups(ctx context.Context, cooperativeID string, in dto.UpdateBackupSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	applyBool(&s.AutoBackup, in.AutoBackup)
	return uc.save(ctx, s)
}

// OdooStatus estado de la integración: conectada si hay configuración completa.
func (uc *SettingsUseCase) OdooStatus(ctx context.Context, cooperativeID string) (*dto.OdooStatusResponse, error) {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	connected := s.OdooURL != "" && s.OdooDatabase != "" && s.OdooUsername != "" && s.OdooAPIKey != ""
	return &dto.OdooStatusResponse{IsConnected: connected, LastSync: s.OdooLastSync}, nil
}

// SaveOdooConfig guarda las credenciales de conexión a Odoo.
func (uc *SettingsUseCase) SaveOdooConfig(ctx context.Context, cooperativeID string, in dto.OdooConfigRequest) error {
	s, err := uc.load(ctx, cooperativeID)
	if err != nil {
		return err
	}
	s.OdooURL = in.URL
	s.OdooDatabase = in.Database
	s.OdooUsername = in.Username
	s.OdooAPIKey = in.APIKey
	_, err = uc.save(ctx, s)
	return err
}

// TestOdoo prueba las credenciales contra el servidor Odoo sin persistirlas.
func (uc *SettingsUseCase) TestOdoo(ctx context.Context, in dto.OdooConfigRequest) *dto.OdooTestResponse {
	if uc.odoo == nil {
		return &dto.OdooTestResponse{Success: false, Message: "integración Odoo no disponible"}
	}
	ok, msg := uc.odoo.TestConnection(ctx, in.URL, in.Database, in.Username, in.APIKey)
	return &dto.OdooTestResponse{Success: ok, Message: msg}
}

func (uc *SettingsUseCase) load(ctx context.Context, cooperativeID string) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.DefaultSettings(cooperativeID)
	}
	return s, nil
}

func (uc *SettingsUseCase) save(ctx context.Context, s *entity.Settings) (*dto.SettingsResponse, error) {
	s.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return uc.Get(ctx, s.CooperativeID)
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
