package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository construye el adaptador de persistencia de preferencias.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get devuelve las preferencias de la cooperativa o (nil, nil) si nunca guardó.
func (r *SettingsRepo) Get(ctx context.Context, cooperativeID string) (*entity.Settings, error) {
	query := `
		SELECT cooperative_id, email_notifications, upload_notifications, payment_reminders,
		       two_factor_auth, session_timeout, auto_backup,
		       odoo_url, odoo_database, odoo_username, odoo_api_key, odoo_last_sync, updated_at
		FROM cooperative_settings WHERE cooperative_id = $1`
	var s entity.Settings
	err := r.pool.QueryRow(ctx, query, cooperativeID).Scan(
		&s.CooperativeID, &s.EmailNotifications, &s.UploadNotifications, &s.PaymentReminders,
		&s.TwoFactorAuth, &s.SessionTimeout, &s.AutoBackup,
		&s.OdooURL, &s.OdooDatabase, &s.OdooUsername, &s.OdooAPIKey, &s.OdooLastSync, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de preferencias de la cooperativa.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO cooperative_settings (cooperative_id, email_notifications, upload_notifications, payment_reminders,
		                                  two_factor_auth, session_timeout, auto_backup,
		                                  odoo_url, odoo_database, odoo_username, odoo_api_key, odoo_last_sync, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (cooperative_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			upload_notifications = EXCLUDED.upload_notifications,
			payment_reminders = EXCLUDED.payment_reminders,
			two_factor_auth = EXCLUDED.two_factor_auth,
			session_timeout = EXCLUDED.session_timeout,
			auto_backup = EXCLUDED.auto_backup,
			odoo_url = EXCLUDED.odoo_url,
			odoo_database = EXCLUDED.odoo_database,
			odoo_username = EXCLUDED.odoo_username,
			odoo_api_key = EXCLUDED.odoo_api_key,
			odoo_last_sync = EXCLUDED.odoo_last_sync,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query,
		s.CooperativeID, s.EmailNotifications, s.UploadNotifications, s.PaymentReminders,
		s.TwoFactorAuth, s.SessionTimeout, s.AutoBackup,
		s.OdooURL, s.OdooDatabase, s.OdooUsername, s.OdooAPIKey, s.OdooLastSync, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
