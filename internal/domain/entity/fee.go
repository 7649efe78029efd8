package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de aporte de un socio en un período.
const (
	FeeUpToDate = "up-to-date"
	FeeWithDebt = "with-debt"
)

// MembershipFee es el aporte esperado y pagado de un socio en un período.
type MembershipFee struct {
	ID                   string
	CooperativeID        string
	Year                 int
	Month                int
	MemberID             string // código interno del socio (puede enlazar a users.id)
	MemberName           string
	ExpectedContribution decimal.Decimal
	PaymentMade          decimal.Decimal
	CreatedAt            time.Time
}

// Debt devuelve la deuda del socio en el período (nunca negativa).
func (f *MembershipFee) Debt() decimal.Decimal {
	d := f.ExpectedContribution.Sub(f.PaymentMade)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Status clasifica el aporte: con deuda o al día.
func (f *MembershipFee) Status() string {
	if f.Debt().IsPositive() {
		return FeeWithDebt
	}
	return FeeUpToDate
}
