package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

const ratioHistoryMonths = 6

// RatiosUseCase consulta de indicadores financieros.
type RatiosUseCase struct {
	repo repository.RatioRepository
}

// NewRatiosUseCase construye el caso de uso.
func NewRatiosUseCase(repo repository.RatioRepository) *RatiosUseCase {
	return &RatiosUseCase{repo: repo}
}

// Get devuelve los indicadores del período con tendencia respecto al mes
// anterior y su serie histórica de los últimos 6 meses.
func (uc *RatiosUseCase) Get(ctx context.Context, cooperativeID string, p finance.Period) ([]dto.RatioDTO, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, p.Year, p.Month)
	}
	current, err := uc.repo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("indicadores: listar período: %w", err)
	}

	prev := p.Previous()
	previous, err := uc.repo.ListByPeriod(ctx, cooperativeID, prev.Year, prev.Month)
	if err != nil {
		return nil, fmt.Errorf("indicadores: listar período anterior: %w", err)
	}
	prevByName := make(map[string]decimal.Decimal, len(previous))
	for _, r := range previous {
		prevByName[r.Name] = r.Value
	}

	history, err := uc.historyByName(ctx, cooperativeID, p)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RatioDTO, 0, len(current))
	for _, r := range current {
		trend := finance.TrendStable
		if pv, ok := prevByName[r.Name]; ok {
			trend = finance.Trend(r.Value, pv)
		}
		out = append(out, dto.RatioDTO{
			ID:          r.ID,
			Name:        r.Name,
			Value:       r.Value,
			Description: r.Description,
			Trend:       trend,
			History:     history[r.Name],
		})
	}
	return out, nil
}

// History devuelve la serie mensual de todos los indicadores de los últimos n
// meses, aplanada en orden cronológico (para la vista de gráficos).
func (uc *RatiosUseCase) History(ctx context.Context, cooperativeID string, months int) ([]dto.RatioDTO, error) {
	if months <= 0 || months > 24 {
		months = ratioHistoryMonths
	}
	periods := finance.LastPeriods(time.Now(), months)

	var out []dto.RatioDTO
	for i := len(periods) - 1; i >= 0; i-- {
		p := periods[i]
		ratios, err := uc.repo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
		if err != nil {
			return nil, fmt.Errorf("indicadores: histórico %d-%d: %w", p.Year, p.Month, err)
		}
		for _, r := range ratios {
			out = append(out, dto.RatioDTO{
				ID:          r.ID,
				Name:        r.Name,
				Value:       r.Value,
				Description: finance.Period{Year: p.Year, Month: p.Month}.Format(),
			})
		}
	}
	return out, nil
}

// historyByName arma la serie de 6 meses por nombre de indicador terminando en p.
func (uc *RatiosUseCase) historyByName(ctx context.Context, cooperativeID string, p finance.Period) (map[string][]dto.RatioPointDTO, error) {
	periods := make([]finance.Period, 0, ratioHistoryMonths)
	cur := p
	for i := 0; i < ratioHistoryMonths; i++ {
		periods = append(periods, cur)
		cur = cur.Previous()
	}

	history := make(map[string][]dto.RatioPointDTO)
	for i := len(periods) - 1; i >= 0; i-- {
		hp := periods[i]
		ratios, err := uc.repo.ListByPeriod(ctx, cooperativeID, hp.Year, hp.Month)
		if err != nil {
			return nil, fmt.Errorf("indicadores: histórico %d-%d: %w", hp.Year, hp.Month, err)
		}
		for _, r := range ratios {
			history[r.Name] = append(history[r.Name], dto.RatioPointDTO{
				Period: hp.Format(),
				Value:  r.Value,
			})
		}
	}
	return history, nil
}
