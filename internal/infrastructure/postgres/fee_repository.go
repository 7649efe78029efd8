package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.FeeRepository = (*FeeRepo)(nil)

const feeColumns = `id, cooperative_id, year, month, member_id, member_name, expected_contribution, payment_made, created_at`

// FeeRepo implementación del puerto FeeRepository sobre PostgreSQL.
type FeeRepo struct {
	pool *pgxpool.Pool
}

// NewFeeRepository construye el adaptador de persistencia de aportes.
func NewFeeRepository(pool *pgxpool.Pool) *FeeRepo {
	return &FeeRepo{pool: pool}
}

// ListByPeriod devuelve los aportes del período ordenados por nombre de socio.
func (r *FeeRepo) ListByPeriod(ctx context.Context, cooperativeID string, year, month int) ([]*entity.MembershipFee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM membership_fees
		WHERE cooperative_id = $1 AND year = $2 AND month = $3
		ORDER BY member_name`
	rows, err := r.pool.Query(ctx, query, cooperativeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	defer rows.Close()
	return scanFees(rows)
}

// ListByMember devuelve los últimos aportes del socio, del más reciente al más antiguo.
// memberID se compara contra member_id y contra users.id vía RUT del socio.
func (r *FeeRepo) ListByMember(ctx context.Context, cooperativeID, memberID string, limit int) ([]*entity.MembershipFee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM membership_fees
		WHERE cooperative_id = $1
		  AND (member_id = $2 OR member_id IN (SELECT rut FROM users WHERE id = $2))
		ORDER BY year DESC, month DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, cooperativeID, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("list fees by member: %w", err)
	}
	defer rows.Close()
	return scanFees(rows)
}

// ReplacePeriod borra los aportes existentes del período e inserta los nuevos en una transacción.
func (r *FeeRepo) ReplacePeriod(ctx context.Context, cooperativeID string, year, month int, fees []*entity.MembershipFee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM membership_fees WHERE cooperative_id = $1 AND year = $2 AND month = $3`,
		cooperativeID, year, month,
	)
	if err != nil {
		return fmt.Errorf("delete fee period: %w", err)
	}
	if err := insertFees(ctx, tx, fees); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InsertPeriod inserta los aportes del período (que debe estar vacío).
func (r *FeeRepo) InsertPeriod(ctx context.Context, cooperativeID string, year, month int, fees []*entity.MembershipFee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertFees(ctx, tx, fees); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HasPeriod indica si el período ya tiene datos cargados.
func (r *FeeRepo) HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error) {
	return hasPeriod(ctx, r.pool, "membership_fees", cooperativeID, year, month)
}

// MemberIDsWithDebt devuelve los user IDs de socios activos con deuda en el período.
// Enlaza member_id contra users.rut para resolver el usuario de plataforma.
func (r *FeeRepo) MemberIDsWithDebt(ctx context.Context, cooperativeID string, year, month int) ([]string, error) {
	query := `
		SELECT DISTINCT u.id
		FROM membership_fees f
		JOIN users u ON u.cooperative_id = f.cooperative_id AND (u.rut = f.member_id OR u.id::text = f.member_id)
		WHERE f.cooperative_id = $1 AND f.year = $2 AND f.month = $3
		  AND f.expected_contribution > f.payment_made
		  AND u.status = 'active'`
	rows, err := r.pool.Query(ctx, query, cooperativeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list members with debt: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertFees(ctx context.Context, tx pgx.Tx, fees []*entity.MembershipFee) error {
	for _, f := range fees {
		_, err := tx.Exec(ctx, `
			INSERT INTO membership_fees (id, cooperative_id, year, month, member_id, member_name, expected_contribution, payment_made, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			f.ID, f.CooperativeID, f.Year, f.Month, f.MemberID, f.MemberName, f.ExpectedContribution, f.PaymentMade, f.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert fee: %w", err)
		}
	}
	return nil
}

func scanFees(rows pgx.Rows) ([]*entity.MembershipFee, error) {
	var list []*entity.MembershipFee
	for rows.Next() {
		var f entity.MembershipFee
		if err := rows.Scan(
			&f.ID, &f.CooperativeID, &f.Year, &f.Month, &f.MemberID, &f.MemberName,
			&f.ExpectedContribution, &f.PaymentMade, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fee: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
