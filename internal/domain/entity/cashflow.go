package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de flujo de caja.
const (
	FlowOperating = "operating"
	FlowInvesting = "investing"
	FlowFinancing = "financing"
)

// CashFlowEntry es un movimiento del estado de flujo de efectivo de un período.
// Los egresos llegan con monto negativo.
type CashFlowEntry struct {
	ID            string
	CooperativeID string
	Year          int
	Month         int
	Category      string // operating, investing, financing
	Description   string
	Amount        decimal.Decimal
	CreatedAt     time.Time
}
