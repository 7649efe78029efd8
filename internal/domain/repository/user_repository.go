package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las consultas que no encuentran filas devuelven (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string) error
	ListByCooperative(ctx context.Context, cooperativeID, search string) ([]*entity.User, error)
	ListIDsByCooperative(ctx context.Context, cooperativeID string, onlyActive bool) ([]string, error)
}
