package finance

import (
	"github.com/shopspring/decimal"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// FeeSummary son los agregados de aportes de un período.
type FeeSummary struct {
	TotalExpected   decimal.Decimal
	TotalPaid       decimal.Decimal
	TotalDebt       decimal.Decimal
	MembersWithDebt int
	TotalMembers    int
	CollectionRate  decimal.Decimal // porcentaje 0..100, redondeado a 1 decimal
}

// SummarizeFees agrega los aportes de un período: totales, socios con deuda y
// tasa de cobranza (pagado / esperado × 100; 0 si no hay aportes esperados).
func SummarizeFees(fees []*entity.MembershipFee) FeeSummary {
	s := FeeSummary{TotalMembers: len(fees)}
	for _, f := range fees {
		s.TotalExpected = s.TotalExpected.Add(f.ExpectedContribution)
		s.TotalPaid = s.TotalPaid.Add(f.PaymentMade)
		debt := f.Debt()
		s.TotalDebt = s.TotalDebt.Add(debt)
		if debt.IsPositive() {
			s.MembersWithDebt++
		}
	}
	if s.TotalExpected.IsPositive() {
		s.CollectionRate = s.TotalPaid.Div(s.TotalExpected).Mul(hundred).Round(1)
	}
	return s
}
