package finance

import "github.com/shopspring/decimal"

// Tendencias de un indicador respecto al período anterior.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Trend compara el valor actual contra el anterior y clasifica la tendencia.
func Trend(current, previous decimal.Decimal) string {
	switch current.Cmp(previous) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendStable
	}
}
