package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier subconjunto de pgx que satisfacen tanto *pgxpool.Pool como pgx.Tx.
// Los repositorios que participan en transacciones lo reciben en lugar del pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// hasPeriod indica si la tabla tiene filas para la cooperativa y el período.
// table siempre es una constante del paquete, nunca entrada del usuario.
func hasPeriod(ctx context.Context, pool *pgxpool.Pool, table, cooperativeID string, year, month int) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE cooperative_id = $1 AND year = $2 AND month = $3)`, table)
	var exists bool
	if err := pool.QueryRow(ctx, query, cooperativeID, year, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("check period %s: %w", table, err)
	}
	return exists, nil
}
