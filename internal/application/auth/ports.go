package auth

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el alta de cooperativa y su
// usuario administrador sea atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		coopRepo repository.CooperativeRepository,
	) error) error
}
