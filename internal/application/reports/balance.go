// Package reports contiene los casos de uso de consulta y exportación de los
// estados financieros: balance general, flujo de caja, aportes, indicadores y
// KPIs del dashboard. Todos se parametrizan por (cooperativa, año, mes).
package reports

import (
	"context"
	"fmt"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// BalanceUseCase consulta del balance general.
type BalanceUseCase struct {
	repo repository.BalanceRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(repo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{repo: repo}
}

// Get devuelve las líneas y los totales del período. El indicador de cuadre se
// calcula siempre desde los totales, nunca se persiste.
func (uc *BalanceUseCase) Get(ctx context.Context, cooperativeID string, p finance.Period) (*dto.BalanceSheetDTO, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, p.Year, p.Month)
	}
	entries, err := uc.repo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("balance: listar período: %w", err)
	}
	summary := finance.SummarizeBalance(entries)

	out := &dto.BalanceSheetDTO{
		Entries: make([]dto.BalanceEntryDTO, 0, len(entries)),
		Summary: dto.BalanceSummaryDTO{
			TotalAssets:      summary.TotalAssets,
			TotalLiabilities: summary.TotalLiabilities,
			TotalEquity:      summary.TotalEquity,
			IsBalanced:       summary.IsBalanced(),
		},
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, balanceEntryToDTO(e))
	}
	return out, nil
}

func balanceEntryToDTO(e *entity.BalanceEntry) dto.BalanceEntryDTO {
	return dto.BalanceEntryDTO{
		ID:            e.ID,
		AccountCode:   e.AccountCode,
		AccountName:   e.AccountName,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		InitialDebit:  e.InitialDebit,
		InitialCredit: e.InitialCredit,
		PeriodDebit:   e.PeriodDebit,
		PeriodCredit:  e.PeriodCredit,
		FinalDebit:    e.FinalDebit,
		FinalCredit:   e.FinalCredit,
	}
}
