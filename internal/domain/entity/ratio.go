package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRatio es un indicador financiero calculado para un período
// (liquidez, solvencia, rentabilidad, etc.). Llega vía carga de archivos.
type FinancialRatio struct {
	ID            string
	CooperativeID string
	Year          int
	Month         int
	Name          string
	Value         decimal.Decimal
	Description   string
	CreatedAt     time.Time
}
