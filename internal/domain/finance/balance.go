package finance

import (
	"github.com/shopspring/decimal"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// BalanceSummary son los totales del balance general de un período.
type BalanceSummary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// IsBalanced indica si el balance está "cuadrado": activo = pasivo + patrimonio.
// La comparación es exacta sobre decimales; cualquier descuadre, por mínimo que
// sea, se reporta.
func (s BalanceSummary) IsBalanced() bool {
	return s.TotalAssets.Equal(s.TotalLiabilities.Add(s.TotalEquity))
}

// SummarizeBalance totaliza las líneas del balance por categoría usando el
// saldo final de cada cuenta según su naturaleza deudora o acreedora.
func SummarizeBalance(entries []*entity.BalanceEntry) BalanceSummary {
	var s BalanceSummary
	for _, e := range entries {
		switch e.Category {
		case entity.CategoryAssets:
			s.TotalAssets = s.TotalAssets.Add(e.FinalBalance())
		case entity.CategoryLiabilities:
			s.TotalLiabilities = s.TotalLiabilities.Add(e.FinalBalance())
		case entity.CategoryEquity:
			s.TotalEquity = s.TotalEquity.Add(e.FinalBalance())
		}
	}
	return s
}
