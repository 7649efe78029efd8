package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación del puerto BalanceRepository sobre PostgreSQL.
type BalanceRepo struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository construye el adaptador de persistencia del balance general.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// ListByPeriod devuelve las líneas del balance del período ordenadas por código de cuenta.
func (r *BalanceRepo) ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.BalanceEntry, error) {
	query := `
		SELECT id, cooperative_id, year, month, account_code, account_name, category, subcategory,
		       initial_debit, initial_credit, period_debit, period_credit, final_debit, final_credit, created_at
		FROM balance_entries
		WHERE cooperative_id = $1 AND year = $2 AND month = $3
		ORDER BY account_code`
	rows, err := r.pool.Query(ctx, query, cooperativeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list balance entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.BalanceEntry
	for rows.Next() {
		var e entity.BalanceEntry
		if err := rows.Scan(
			&e.ID, &e.CooperativeID, &e.Year, &e.Month, &e.AccountCode, &e.AccountName, &e.Category, &e.Subcategory,
			&e.InitialDebit, &e.InitialCredit, &e.PeriodDebit, &e.PeriodCredit, &e.FinalDebit, &e.FinalCredit, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan balance entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ReplacePeriod borra las líneas existentes del período e inserta las nuevas en una transacción.
func (r *BalanceRepo) ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.BalanceEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM balance_entries WHERE cooperative_id = $1 AND year = $2 AND month = $3`,
		cooperativeID, year, month,
	)
	if err != nil {
		return fmt.Errorf("delete balance period: %w", err)
	}
	if err := insertBalanceEntries(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InsertPeriod inserta las líneas del período (que debe estar vacío).
func (r *BalanceRepo) InsertPeriod(ctx context.Context, cooperativeID string, year, month int, entries []*entity.BalanceEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertBalanceEntries(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HasPeriod indica si el período ya tiene datos cargados.
func (r *BalanceRepo) HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error) {
	return hasPeriod(ctx, r.pool, "balance_entries", cooperativeID, year, month)
}

func insertBalanceEntries(ctx context.Context, tx pgx.Tx, entries []*entity.BalanceEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO balance_entries (id, cooperative_id, year, month, account_code, account_name, category, subcategory,
			                             initial_debit, initial_credit, period_debit, period_credit, final_debit, final_credit, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			e.ID, e.CooperativeID, e.Year, e.Month, e.AccountCode, e.AccountName, e.Category, e.Subcategory,
			e.InitialDebit, e.InitialCredit, e.PeriodDebit, e.PeriodCredit, e.FinalDebit, e.FinalCredit, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert balance entry: %w", err)
		}
	}
	return nil
}
