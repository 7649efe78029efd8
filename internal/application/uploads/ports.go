package uploads

import "github.com/coopfondos/coopfondos-api/internal/domain/entity"

// ParsedData filas extraídas de un archivo cargado. Solo el slice del módulo
// correspondiente viene poblado.
type ParsedData struct {
	Balance  []*entity.BalanceEntry
	CashFlow []*entity.CashFlowEntry
	Fees     []*entity.MembershipFee
	Ratios   []*entity.FinancialRatio
	// Skipped filas descartadas por formato inválido (la carga queda "partial").
	Skipped int
}

// Rows cantidad de filas válidas extraídas.
func (p *ParsedData) Rows() int {
	return len(p.Balance) + len(p.CashFlow) + len(p.Fees) + len(p.Ratios)
}

// Parser extrae filas de un archivo CSV o Excel según el módulo destino.
type Parser interface {
	Parse(module, fileName string, content []byte) (*ParsedData, error)
}
