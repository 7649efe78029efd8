package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.RatioRepository = (*RatioRepo)(nil)

// RatioRepo implementación del puerto RatioRepository sobre PostgreSQL.
type RatioRepo struct {
	pool *pgxpool.Pool
}

// NewRatioRepository construye el adaptador de persistencia de indicadores.
func NewRatioRepository(pool *pgxpool.Pool) *RatioRepo {
	return &RatioRepo{pool: pool}
}

// ListByPeriod devuelve los indicadores del período ordenados por nombre.
func (r *RatioRepo) ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.FinancialRatio, error) {
	query := `
		SELECT id, cooperative_id, year, month, name, value, description, created_at
		FROM financial_ratios
		WHERE cooperative_id = $1 AND year = $2 AND month = $3
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query, cooperativeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list ratios: %w", err)
	}
	defer rows.Close()

	var list []*entity.FinancialRatio
	for rows.Next() {
		var x entity.FinancialRatio
		if err := rows.Scan(
			&x.ID, &x.CooperativeID, &x.Year, &x.Month, &x.Name, &x.Value, &x.Description, &x.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ratio: %w", err)
		}
		list = append(list, &x)
	}
	return list, rows.Err()
}

// ReplacePeriod borra los indicadores existentes del período e inserta los nuevos en una transacción.
func (r *RatioRepo) ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, ratios []*entity.FinancialRatio) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM financial_ratios WHERE cooperative_id = $1 AND year = $2 AND month = $3`,
		cooperativeID, year, month,
	)
	if err != nil {
		return fmt.Errorf("delete ratio period: %w", err)
	}
	if err := insertRatios(ctx, tx, ratios); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InsertPeriod inserta los indicadores del período (que debe estar vacío).
func (r *RatioRepo) InsertPeriod(ctx context.Context, cooperativeID string, year, month int, ratios []*entity.FinancialRatio) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertRatios(ctx, tx, ratios); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HasPeriod indica si el período ya tiene datos cargados.
func (r *RatioRepo) HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error) {
	return hasPeriod(ctx, r.pool, "financial_ratios", cooperativeID, year, month)
}

func insertRatios(ctx context.Context, tx pgx.Tx, ratios []*entity.FinancialRatio) error {
	for _, x := range ratios {
		_, err := tx.Exec(ctx, `
			INSERT INTO financial_ratios (id, cooperative_id, year, month, name, value, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			x.ID, x.CooperativeID, x.Year, x.Month, x.Name, x.Value, x.Description, x.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert ratio: %w", err)
		}
	}
	return nil
}
