package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de cuentas del balance general.
const (
	CategoryAssets      = "assets"
	CategoryLiabilities = "liabilities"
	CategoryEquity      = "equity"
)

// BalanceEntry es una línea del balance de comprobación y saldos de un período.
// Los saldos llegan desde la carga de archivos contables; no se recalculan aquí.
type BalanceEntry struct {
	ID            string
	CooperativeID string
	Year          int
	Month         int
	AccountCode   string
	AccountName   string
	Category      string // assets, liabilities, equity
	Subcategory   string
	InitialDebit  decimal.Decimal
	InitialCredit decimal.Decimal
	PeriodDebit   decimal.Decimal
	PeriodCredit  decimal.Decimal
	FinalDebit    decimal.Decimal
	FinalCredit   decimal.Decimal
	CreatedAt     time.Time
}

// FinalBalance devuelve el saldo final de la cuenta según su naturaleza:
// las cuentas de activo son deudoras; pasivo y patrimonio son acreedoras.
func (e *BalanceEntry) FinalBalance() decimal.Decimal {
	if e.Category == CategoryAssets {
		return e.FinalDebit.Sub(e.FinalCredit)
	}
	return e.FinalCredit.Sub(e.FinalDebit)
}
