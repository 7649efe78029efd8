package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// CooperativeUseCase consulta y mantenimiento de la ficha de la cooperativa.
type CooperativeUseCase struct {
	repo repository.CooperativeRepository
}

// NewCooperativeUseCase construye el caso de uso.
func NewCooperativeUseCase(repo repository.CooperativeRepository) *CooperativeUseCase {
	return &CooperativeUseCase{repo: repo}
}

// ListVisible devuelve las cooperativas visibles para el usuario: los socios
// ven solo la propia; el resto de roles ve el listado completo.
func (uc *CooperativeUseCase) ListVisible(ctx context.Context, userCooperativeID, role string) ([]dto.CooperativeResponse, error) {
	if role == entity.RoleSocio {
		coop, err := uc.repo.GetByID(ctx, userCooperativeID)
		if err != nil {
			return nil, err
		}
		if coop == nil {
			return []dto.CooperativeResponse{}, nil
		}
		return []dto.CooperativeResponse{{ID: coop.ID, Name: coop.Name, RUC: coop.RUC}}, nil
	}

	coops, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CooperativeResponse, 0, len(coops))
	for _, c := range coops {
		out = append(out, dto.CooperativeResponse{ID: c.ID, Name: c.Name, RUC: c.RUC})
	}
	return out, nil
}

// GetInfo devuelve la ficha completa de la cooperativa.
func (uc *CooperativeUseCase) GetInfo(ctx context.Context, cooperativeID string) (*dto.CooperativeInfo, error) {
	coop, err := uc.repo.GetByID(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	if coop == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CooperativeInfo{
		ID: coop.ID, Name: coop.Name, RUC: coop.RUC, Type: coop.Type, Address: coop.Address,
	}, nil
}

// UpdateInfo actualiza nombre, RUC y dirección de la cooperativa.
func (uc *CooperativeUseCase) UpdateInfo(ctx context.Context, cooperativeID string, in dto.UpdateCooperativeRequest) (*dto.CooperativeInfo, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	coop, err := uc.repo.GetByID(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	if coop == nil {
		return nil, domain.ErrNotFound
	}
	coop.Name = strings.TrimSpace(in.Name)
	coop.RUC = in.RUC
	coop.Address = in.Address
	coop.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, coop); err != nil {
		return nil, err
	}
	return &dto.CooperativeInfo{
		ID: coop.ID, Name: coop.Name, RUC: coop.RUC, Type: coop.Type, Address: coop.Address,
	}, nil
}
