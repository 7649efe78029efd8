package repository

import (
	"context"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// BalanceRepository persistencia de líneas del balance general por período.
type BalanceRepository interface {
	ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.BalanceEntry, error)
	ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.BalanceEntry) error
	InsertPeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.BalanceEntry) error
	HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error)
}

// CashFlowRepository persistencia del estado de flujo de efectivo por período.
type CashFlowRepository interface {
	ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.CashFlowEntry, error)
	ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.CashFlowEntry) error
	InsertPeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.CashFlowEntry) error
	HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error)
}

// FeeRepository persistencia de aportes de socios por período.
type FeeRepository interface {
	ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.MembershipFee, error)
	ListByMember(ctx context.Context, cooperativeID, memberID string, limit int) ([]*entity.MembershipFee, error)
	ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, fees []*entity.MembershipFee) error
	InsertPeriod(ctx context.Context, cooperativeID string, year, month int, fees []*entity.MembershipFee) error
	HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error)
	// MemberIDsWithDebt devuelve los user IDs de socios con deuda en el período,
	// para el envío dirigido de notificaciones.
	MemberIDsWithDebt(ctx context.Context, cooperativeID string, year, month int) ([]string, error)
}

// RatioRepository persistencia de indicadores financieros por período.
type RatioRepository interface {
	ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.FinancialRatio, error)
	ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, ratios []*entity.FinancialRatio) error
	InsertPeriod(ctx context.Context, cooperativeID string, year, month int, ratios []*entity.FinancialRatio) error
	HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error)
}
