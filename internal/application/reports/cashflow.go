package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// CashFlowUseCase consulta del estado de flujo de efectivo.
type CashFlowUseCase struct {
	repo repository.CashFlowRepository
}

// NewCashFlowUseCase construye el caso de uso.
func NewCashFlowUseCase(repo repository.CashFlowRepository) *CashFlowUseCase {
	return &CashFlowUseCase{repo: repo}
}

// Get devuelve los movimientos y totales por actividad del período.
func (uc *CashFlowUseCase) Get(ctx context.Context, cooperativeID string, p finance.Period) (*dto.CashFlowDTO, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, p.Year, p.Month)
	}
	entries, err := uc.repo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("flujo de caja: listar período: %w", err)
	}

	out := &dto.CashFlowDTO{Entries: make([]dto.CashFlowEntryDTO, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.CashFlowEntryDTO{
			ID: e.ID, Category: e.Category, Description: e.Description, Amount: e.Amount,
		})
		switch e.Category {
		case entity.FlowOperating:
			out.Summary.Operating = out.Summary.Operating.Add(e.Amount)
		case entity.FlowInvesting:
			out.Summary.Investing = out.Summary.Investing.Add(e.Amount)
		case entity.FlowFinancing:
			out.Summary.Financing = out.Summary.Financing.Add(e.Amount)
		}
	}
	out.Summary.NetCashFlow = out.Summary.Operating.
		Add(out.Summary.Investing).
		Add(out.Summary.Financing)
	return out, nil
}

// History devuelve la serie mensual de los últimos n meses (incluido el actual),
// en orden cronológico ascendente para graficar.
func (uc *CashFlowUseCase) History(ctx context.Context, cooperativeID string, months int) ([]dto.CashFlowHistoryItemDTO, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	periods := finance.LastPeriods(time.Now(), months)

	out := make([]dto.CashFlowHistoryItemDTO, 0, months)
	// Recorrer de más antiguo a más reciente
	for i := len(periods) - 1; i >= 0; i-- {
		p := periods[i]
		flow, err := uc.Get(ctx, cooperativeID, p)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.CashFlowHistoryItemDTO{
			Period:      p.Format(),
			Year:        p.Year,
			Month:       p.Month,
			Operating:   flow.Summary.Operating,
			Investing:   flow.Summary.Investing,
			Financing:   flow.Summary.Financing,
			NetCashFlow: flow.Summary.NetCashFlow,
		})
	}
	return out, nil
}
