package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// SettingsRepository persistencia de preferencias por cooperativa.
// Get devuelve (nil, nil) si la cooperativa aún no guardó configuración.
type SettingsRepository interface {
	Get(ctx context.Context, cooperativeID string) (*entity.Settings, error)
	Upsert(ctx context.Context, s *entity.Settings) error
}
