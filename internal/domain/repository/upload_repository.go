package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// UploadRepository persistencia del historial de cargas de archivos.
type UploadRepository interface {
	Create(ctx context.Context, rec *entity.UploadRecord) error
	History(ctx context.Context, cooperativeID string, limit int) ([]*entity.UploadRecord, error)
	// LatestByModule devuelve la última carga exitosa de cada módulo.
	LatestByModule(ctx context.Context, cooperativeID string) (map[string]*entity.UploadRecord, error)
}

// ActivityRepository bitácora de actividad de usuarios.
type ActivityRepository interface {
	Log(ctx context.Context, entry *entity.ActivityLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ActivityLog, error)
}
