package dto

import "github.com/shopspring/decimal"

// ── Balance general ───────────────────────────────────────────────────────────

// BalanceEntryDTO línea del balance de comprobación y saldos.
type BalanceEntryDTO struct {
	ID            string          `json:"id"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	InitialDebit  decimal.Decimal `json:"initialDebit"`
	InitialCredit decimal.Decimal `json:"initialCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	FinalDebit    decimal.Decimal `json:"finalDebit"`
	FinalCredit   decimal.Decimal `json:"finalCredit"`
}

// BalanceSummaryDTO totales del balance; IsBalanced indica el cuadre
// activo = pasivo + patrimonio.
type BalanceSummaryDTO struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// BalanceSheetDTO respuesta de GET /api/balance-sheet.
type BalanceSheetDTO struct {
	Entries []BalanceEntryDTO `json:"entries"`
	Summary BalanceSummaryDTO `json:"summary"`
}

// ── Flujo de caja ─────────────────────────────────────────────────────────────

// CashFlowEntryDTO movimiento del estado de flujo de efectivo.
type CashFlowEntryDTO struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowSummaryDTO totales por actividad y flujo neto del período.
type CashFlowSummaryDTO struct {
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// CashFlowDTO respuesta de GET /api/cash-flow.
type CashFlowDTO struct {
	Entries []CashFlowEntryDTO `json:"entries"`
	Summary CashFlowSummaryDTO `json:"summary"`
}

// CashFlowHistoryItemDTO punto de la serie histórica de flujo de caja.
type CashFlowHistoryItemDTO struct {
	Period      string          `json:"period"` // ej. "Marzo 2026"
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// ── Aportes de socios ─────────────────────────────────────────────────────────

// FeeDTO aporte de un socio en un período.
type FeeDTO struct {
	ID                   string          `json:"id"`
	MemberID             string          `json:"memberId"`
	MemberName           string          `json:"memberName"`
	Period               string          `json:"period"` // etiqueta legible
	ExpectedContribution decimal.Decimal `json:"expectedContribution"`
	PaymentMade          decimal.Decimal `json:"paymentMade"`
	Debt                 decimal.Decimal `json:"debt"`
	Status               string          `json:"status"` // up-to-date | with-debt
}

// FeeSummaryDTO agregados de aportes del período.
type FeeSummaryDTO struct {
	TotalExpected   decimal.Decimal `json:"totalExpected"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	MembersWithDebt int             `json:"membersWithDebt"`
	TotalMembers    int             `json:"totalMembers"`
	CollectionRate  decimal.Decimal `json:"collectionRate"`
}

// FeesDTO respuesta de GET /api/membership-fees.
type FeesDTO struct {
	Fees    []FeeDTO      `json:"fees"`
	Summary FeeSummaryDTO `json:"summary"`
}

// ── Indicadores ───────────────────────────────────────────────────────────────

// RatioPointDTO punto histórico de un indicador.
type RatioPointDTO struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// RatioDTO indicador financiero con su tendencia e histórico.
type RatioDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
	Trend       string          `json:"trend"`
	History     []RatioPointDTO `json:"history,omitempty"`
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// Formatos de presentación de un KPI.
const (
	KPIFormatCurrency   = "currency"
	KPIFormatPercentage = "percentage"
	KPIFormatNumber     = "number"
)

// KPIDTO métrica resumida del dashboard con tendencia respecto al período anterior.
type KPIDTO struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	PreviousValue decimal.Decimal `json:"previousValue"`
	Trend         string          `json:"trend"`
	Format        string          `json:"format"`
}
