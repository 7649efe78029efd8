package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// KPIUseCase arma las métricas del dashboard a partir de los tres estados
// financieros del período y del anterior.
type KPIUseCase struct {
	balanceRepo  repository.BalanceRepository
	cashFlowRepo repository.CashFlowRepository
	feeRepo      repository.FeeRepository
}

// NewKPIUseCase construye el caso de uso.
func NewKPIUseCase(
	balanceRepo repository.BalanceRepository,
	cashFlowRepo repository.CashFlowRepository,
	feeRepo repository.FeeRepository,
) *KPIUseCase {
	return &KPIUseCase{balanceRepo: balanceRepo, cashFlowRepo: cashFlowRepo, feeRepo: feeRepo}
}

// periodMetrics agregados de un período usados por los KPIs.
type periodMetrics struct {
	totalAssets     decimal.Decimal
	totalEquity     decimal.Decimal
	netCashFlow     decimal.Decimal
	collectionRate  decimal.Decimal
	membersWithDebt int
}

// Get devuelve los KPIs del dashboard comparados contra el período anterior.
//
// Las consultas del período actual y del anterior se lanzan en paralelo; cada
// una agrupa sus tres lecturas de repositorio.
func (uc *KPIUseCase) Get(ctx context.Context, cooperativeID string, p finance.Period) ([]dto.KPIDTO, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, p.Year, p.Month)
	}

	type result struct {
		m   periodMetrics
		err error
	}
	currentCh := make(chan result, 1)
	previousCh := make(chan result, 1)

	go func() {
		m, err := uc.metrics(ctx, cooperativeID, p)
		currentCh <- result{m, err}
	}()
	go func() {
		m, err := uc.metrics(ctx, cooperativeID, p.Previous())
		previousCh <- result{m, err}
	}()

	current := <-currentCh
	previous := <-previousCh

	if current.err != nil {
		return nil, fmt.Errorf("kpis: período actual: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("kpis: período anterior: %w", previous.err)
	}

	cur, prev := current.m, previous.m
	return []dto.KPIDTO{
		{
			ID:            "total-assets",
			Label:         "Activos Totales",
			Value:         cur.totalAssets,
			PreviousValue: prev.totalAssets,
			Trend:         finance.Trend(cur.totalAssets, prev.totalAssets),
			Format:        dto.KPIFormatCurrency,
		},
		{
			ID:            "total-equity",
			Label:         "Patrimonio",
			Value:         cur.totalEquity,
			PreviousValue: prev.totalEquity,
			Trend:         finance.Trend(cur.totalEquity, prev.totalEquity),
			Format:        dto.KPIFormatCurrency,
		},
		{
			ID:            "net-cash-flow",
			Label:         "Flujo de Caja Neto",
			Value:         cur.netCashFlow,
			PreviousValue: prev.netCashFlow,
			Trend:         finance.Trend(cur.netCashFlow, prev.netCashFlow),
			Format:        dto.KPIFormatCurrency,
		},
		{
			ID:            "collection-rate",
			Label:         "Tasa de Cobranza",
			Value:         cur.collectionRate,
			PreviousValue: prev.collectionRate,
			Trend:         finance.Trend(cur.collectionRate, prev.collectionRate),
			Format:        dto.KPIFormatPercentage,
		},
		{
			ID:            "members-with-debt",
			Label:         "Socios con Deuda",
			Value:         decimal.NewFromInt(int64(cur.membersWithDebt)),
			PreviousValue: decimal.NewFromInt(int64(prev.membersWithDebt)),
			// Menos socios con deuda es mejora, pero la dirección de la flecha
			// la decide la vista; aquí solo se compara el valor.
			Trend:  finance.Trend(decimal.NewFromInt(int64(cur.membersWithDebt)), decimal.NewFromInt(int64(prev.membersWithDebt))),
			Format: dto.KPIFormatNumber,
		},
	}, nil
}

func (uc *KPIUseCase) metrics(ctx context.Context, cooperativeID string, p finance.Period) (periodMetrics, error) {
	var m periodMetrics

	entries, err := uc.balanceRepo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return m, err
	}
	balance := finance.SummarizeBalance(entries)
	m.totalAssets = balance.TotalAssets
	m.totalEquity = balance.TotalEquity

	flows, err := uc.cashFlowRepo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return m, err
	}
	for _, f := range flows {
		m.netCashFlow = m.netCashFlow.Add(f.Amount)
	}

	fees, err := uc.feeRepo.ListByPeriod(ctx, cooperativeID, p.Year, p.Month)
	if err != nil {
		return m, err
	}
	feeSummary := finance.SummarizeFees(fees)
	m.collectionRate = feeSummary.CollectionRate
	m.membersWithDebt = feeSummary.MembersWithDebt
	return m, nil
}
