package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)

// CashFlowRepo implementación del puerto CashFlowRepository sobre PostgreSQL.
type CashFlowRepo struct {
	pool *pgxpool.Pool
}

// NewCashFlowRepository construye el adaptador de persistencia del flujo de efectivo.
func NewCashFlowRepository(pool *pgxpool.Pool) *CashFlowRepo {
	return &CashFlowRepo{pool: pool}
}

// ListByPeriod devuelve los movimientos del período agrupados por actividad.
func (r *CashFlowRepo) ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.CashFlowEntry, error) {
	query := `
		SELECT id, cooperative_id, year, month, category, description, amount, created_at
		FROM cash_flow_entries
		WHERE cooperative_id = $1 AND year = $2 AND month = $3
		ORDER BY category, description`
	rows, err := r.pool.Query(ctx, query, cooperativeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list cash flow entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.CashFlowEntry
	for rows.Next() {
		var e entity.CashFlowEntry
		if err := rows.Scan(
			&e.ID, &e.CooperativeID, &e.Year, &e.Month, &e.Category, &e.Description, &e.Amount, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cash flow entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ReplacePeriod borra los movimientos existentes del período e inserta los nuevos en una transacción.
func (r *CashFlowRepo) ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.CashFlowEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM cash_flow_entries WHERE cooperative_id = $1 AND year = $2 AND month = $3`,
		cooperativeID, year, month,
	)
	if err != nil {
		return fmt.Errorf("delete cash flow period: %w", err)
	}
	if err := insertCashFlowEntries(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InsertPeriod inserta los movimientos del período (que debe estar vacío).
func (r *CashFlowRepo) InsertPeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.CashFlowEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertCashFlowEntries(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HasPeriod indica si el período ya tiene datos cargados.
func (r *CashFlowRepo) HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error) {
	return hasPeriod(ctx, r.pool, "cash_flow_entries", cooperativeID, year, month)
}

func insertCashFlowEntries(ctx context.Context, tx pgx.Tx, entries []*entity.CashFlowEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO cash_flow_entries (id, cooperative_id, year, month, category, description, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, e.CooperativeID, e.Year, e.Month, e.Category, e.Description, e.Amount, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert cash flow entry: %w", err)
		}
	}
	return nil
}
