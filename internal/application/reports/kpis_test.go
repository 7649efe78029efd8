package reports_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes por período: cada fake indexa sus datos por (año, mes)
// ──────────────────────────────────────────────────────────────────────────────

type periodKey struct{ year, month int }

type kpiBalanceRepo struct {
	data map[periodKey][]*entity.BalanceEntry
}

func (r *kpiBalanceRepo) ListByPeriod(_ context.Context, _ string, year, month int) ([]*entity.BalanceEntry, error) {
	return r.data[periodKey{year, month}], nil
}
func (r *kpiBalanceRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, _ []*entity.BalanceEntry) error {
	return nil
}
func (r *kpiBalanceRepo) InsertPeriod(_ context.Context, _ string, _, _ int, _ []*entity.BalanceEntry) error {
	return nil
}
func (r *kpiBalanceRepo) HasPeriod(_ context.Context, _ string, _, _ int) (bool, error) {
	return false, nil
}

type kpiCashFlowRepo struct {
	data map[periodKey][]*entity.CashFlowEntry
}

func (r *kpiCashFlowRepo) ListByPeriod(_ context.Context, _ string, year, month int) ([]*entity.CashFlowEntry, error) {
	return r.data[periodKey{year, month}], nil
}
func (r *kpiCashFlowRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, _ []*entity.CashFlowEntry) error {
	return nil
}
func (r *kpiCashFlowRepo) InsertPeriod(_ context.Context, _ string, _, _ int, _ []*entity.CashFlowEntry) error {
	return nil
}
func (r *kpiCashFlowRepo) HasPeriod(_ context.Context, _ string, _, _ int) (bool, error) {
	return false, nil
}

type kpiFeeRepo struct {
	data map[periodKey][]*entity.MembershipFee
}

func (r *kpiFeeRepo) ListByPeriod(_ context.Context, _ string, year, month int) ([]*entity.MembershipFee, error) {
	return r.data[periodKey{year, month}], nil
}
func (r *kpiFeeRepo) ListByMember(_ context.Context, _, _ string, _ int) ([]*entity.MembershipFee, error) {
	return nil, nil
}
func (r *kpiFeeRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, _ []*entity.MembershipFee) error {
	return nil
}
func (r *kpiFeeRepo) InsertPeriod(_ context.Context, _ string, _, _ int, _ []*entity.MembershipFee) error {
	return nil
}
func (r *kpiFeeRepo) HasPeriod(_ context.Context, _ string, _, _ int) (bool, error) {
	return false, nil
}
func (r *kpiFeeRepo) MemberIDsWithDebt(_ context.Context, _ string, _, _ int) ([]string, error) {
	return nil, nil
}

func asset(amount int64) *entity.BalanceEntry {
	return &entity.BalanceEntry{Category: entity.CategoryAssets, FinalDebit: decimal.NewFromInt(amount)}
}

func equity(amount int64) *entity.BalanceEntry {
	return &entity.BalanceEntry{Category: entity.CategoryEquity, FinalCredit: decimal.NewFromInt(amount)}
}

func flow(amount int64) *entity.CashFlowEntry {
	return &entity.CashFlowEntry{Category: entity.FlowOperating, Amount: decimal.NewFromInt(amount)}
}

func fee(expected, paid int64) *entity.MembershipFee {
	return &entity.MembershipFee{
		ExpectedContribution: decimal.NewFromInt(expected),
		PaymentMade:          decimal.NewFromInt(paid),
	}
}

func kpiByID(t *testing.T, kpis []dto.KPIDTO, id string) dto.KPIDTO {
	t.Helper()
	for _, k := range kpis {
		if k.ID == id {
			return k
		}
	}
	t.Fatalf("KPI %q no encontrado", id)
	return dto.KPIDTO{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Get
// ──────────────────────────────────────────────────────────────────────────────

func TestKPIs_ComparaContraPeriodoAnterior(t *testing.T) {
	current := periodKey{2026, 8}
	previous := periodKey{2026, 7}

	uc := reports.NewKPIUseCase(
		&kpiBalanceRepo{data: map[periodKey][]*entity.BalanceEntry{
			current:  {asset(5000), equity(2000)},
			previous: {asset(4000), equity(2500)},
		}},
		&kpiCashFlowRepo{data: map[periodKey][]*entity.CashFlowEntry{
			current:  {flow(300), flow(-100)},
			previous: {flow(200)},
		}},
		&kpiFeeRepo{data: map[periodKey][]*entity.MembershipFee{
			// Actual: 150/200 pagado = 75%, 1 socio con deuda.
			current: {fee(100, 100), fee(100, 50)},
			// Anterior: todo pagado = 100%, sin deuda.
			previous: {fee(100, 100), fee(100, 100)},
		}},
	)

	kpis, err := uc.Get(context.Background(), "coop-1", finance.Period{Year: 2026, Month: 8})
	require.NoError(t, err)
	require.Len(t, kpis, 5)

	assets := kpiByID(t, kpis, "total-assets")
	assert.Equal(t, "5000", assets.Value.String())
	assert.Equal(t, "4000", assets.PreviousValue.String())
	assert.Equal(t, finance.TrendUp, assets.Trend)
	assert.Equal(t, dto.KPIFormatCurrency, assets.Format)

	eq := kpiByID(t, kpis, "total-equity")
	assert.Equal(t, finance.TrendDown, eq.Trend, "el patrimonio cayó de 2500 a 2000")

	cash := kpiByID(t, kpis, "net-cash-flow")
	assert.Equal(t, "200", cash.Value.String(), "los egresos netean a los ingresos")
	assert.Equal(t, finance.TrendStable, cash.Trend)

	rate := kpiByID(t, kpis, "collection-rate")
	assert.Equal(t, "75", rate.Value.String())
	assert.Equal(t, finance.TrendDown, rate.Trend)
	assert.Equal(t, dto.KPIFormatPercentage, rate.Format)

	debt := kpiByID(t, kpis, "members-with-debt")
	assert.Equal(t, "1", debt.Value.String())
	assert.Equal(t, finance.TrendUp, debt.Trend, "la comparación es numérica; la vista decide la flecha")
}

func TestKPIs_CruceDeEnero_UsaDiciembreAnterior(t *testing.T) {
	uc := reports.NewKPIUseCase(
		&kpiBalanceRepo{data: map[periodKey][]*entity.BalanceEntry{
			{2026, 1}:  {asset(1000)},
			{2025, 12}: {asset(900)},
		}},
		&kpiCashFlowRepo{data: map[periodKey][]*entity.CashFlowEntry{}},
		&kpiFeeRepo{data: map[periodKey][]*entity.MembershipFee{}},
	)

	kpis, err := uc.Get(context.Background(), "coop-1", finance.Period{Year: 2026, Month: 1})
	require.NoError(t, err)

	assets := kpiByID(t, kpis, "total-assets")
	assert.Equal(t, "900", assets.PreviousValue.String(), "enero compara contra diciembre del año anterior")
	assert.Equal(t, finance.TrendUp, assets.Trend)
}

func TestKPIs_SinDatos_TodoEnCeroEstable(t *testing.T) {
	uc := reports.NewKPIUseCase(
		&kpiBalanceRepo{data: map[periodKey][]*entity.BalanceEntry{}},
		&kpiCashFlowRepo{data: map[periodKey][]*entity.CashFlowEntry{}},
		&kpiFeeRepo{data: map[periodKey][]*entity.MembershipFee{}},
	)

	kpis, err := uc.Get(context.Background(), "coop-1", finance.Period{Year: 2026, Month: 8})
	require.NoError(t, err)
	for _, k := range kpis {
		assert.True(t, k.Value.IsZero(), "KPI %s debe ser cero sin datos", k.ID)
		assert.Equal(t, finance.TrendStable, k.Trend)
	}
}

func TestKPIs_PeriodoInvalido(t *testing.T) {
	uc := reports.NewKPIUseCase(
		&kpiBalanceRepo{data: nil},
		&kpiCashFlowRepo{data: nil},
		&kpiFeeRepo{data: nil},
	)

	_, err := uc.Get(context.Background(), "coop-1", finance.Period{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
