package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// FeesUseCase consulta de aportes de socios.
type FeesUseCase struct {
	repo repository.FeeRepository
}

// NewFeesUseCase construye el caso de uso.
func NewFeesUseCase(repo repository.FeeRepository) *FeesUseCase {
	return &FeesUseCase{repo: repo}
}

// Get devuelve los aportes del período con filtros de búsqueda y estado.
// El resumen se calcula sobre el período completo, no sobre el subconjunto filtrado,
// para que las tarjetas de totales no cambien al filtrar la tabla.
func (uc *FeesUseCase) Get(ctx context.Context, cooperativeID string, p finance.Period, search, status string) (*dto.FeesDTO, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, p.Year, p.Month)
	}
	fees, err := uc.repo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("aportes: listar período: %w", err)
	}

	summary := finance.SummarizeFees(fees)
	out := &dto.FeesDTO{
		Fees: make([]dto.FeeDTO, 0, len(fees)),
		Summary: dto.FeeSummaryDTO{
			TotalExpected:   summary.TotalExpected,
			TotalPaid:       summary.TotalPaid,
			TotalDebt:       summary.TotalDebt,
			MembersWithDebt: summary.MembersWithDebt,
			TotalMembers:    summary.TotalMembers,
			CollectionRate:  summary.CollectionRate,
		},
	}

	search = strings.ToLower(strings.TrimSpace(search))
	for _, f := range fees {
		if search != "" &&
			!strings.Contains(strings.ToLower(f.MemberName), search) &&
			!strings.Contains(strings.ToLower(f.MemberID), search) {
			continue
		}
		if status != "" && status != "all" && f.Status() != status {
			continue
		}
		out.Fees = append(out.Fees, feeToDTO(f))
	}
	return out, nil
}

// ForMember devuelve el historial de aportes del propio socio (vista "mis aportes").
func (uc *FeesUseCase) ForMember(ctx context.Context, cooperativeID, memberID string, limit int) ([]dto.FeeDTO, error) {
	if limit <= 0 || limit > 48 {
		limit = 12
	}
	fees, err := uc.repo.ListByMember(ctx, cooperativeID, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("aportes: listar socio: %w", err)
	}
	out := make([]dto.FeeDTO, 0, len(fees))
	for _, f := range fees {
		out = append(out, feeToDTO(f))
	}
	return out, nil
}

func feeToDTO(f *entity.MembershipFee) dto.FeeDTO {
	return dto.FeeDTO{
		ID:                   f.ID,
		MemberID:             f.MemberID,
		MemberName:           f.MemberName,
		Period:               finance.Period{Year: f.Year, Month: f.Month}.Format(),
		ExpectedContribution: f.ExpectedContribution,
		PaymentMade:          f.PaymentMade,
		Debt:                 f.Debt(),
		Status:               f.Status(),
	}
}
