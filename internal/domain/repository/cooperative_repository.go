package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// CooperativeRepository define el puerto de persistencia para Cooperative.
type CooperativeRepository interface {
	Create(ctx context.Context, coop *entity.Cooperative) error
	GetByID(ctx context.Context, id string) (*entity.Cooperative, error)
	List(ctx context.Context) ([]*entity.Cooperative, error)
	Update(ctx context.Context, coop *entity.Cooperative) error
}
