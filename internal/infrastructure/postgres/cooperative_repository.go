package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.CooperativeRepository = (*CooperativeRepo)(nil)

// CooperativeRepo implementación del puerto CooperativeRepository sobre PostgreSQL.
type CooperativeRepo struct {
	q Querier
}

// NewCooperativeRepository construye el adaptador de persistencia para
// cooperativas. Pasar pool o tx (Querier).
func NewCooperativeRepository(q Querier) *CooperativeRepo {
	return &CooperativeRepo{q: q}
}

// Create persiste una nueva cooperativa.
func (r *CooperativeRepo) Create(ctx context.Context, coop *entity.Cooperative) error {
	query := `
		INSERT INTO cooperatives (id, name, ruc, type, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		coop.ID, coop.Name, coop.RUC, coop.Type, coop.Address, coop.CreatedAt, coop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cooperative: %w", err)
	}
	return nil
}

// GetByID obtiene una cooperativa por ID.
func (r *CooperativeRepo) GetByID(ctx context.Context, id string) (*entity.Cooperative, error) {
	query := `SELECT id, name, ruc, type, address, created_at, updated_at FROM cooperatives WHERE id = $1`
	var c entity.Cooperative
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.RUC, &c.Type, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cooperative: %w", err)
	}
	return &c, nil
}

// List devuelve todas las cooperativas ordenadas por nombre.
func (r *CooperativeRepo) List(ctx context.Context) ([]*entity.Cooperative, error) {
	query := `SELECT id, name, ruc, type, address, created_at, updated_at FROM cooperatives ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cooperatives: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cooperative
	for rows.Next() {
		var c entity.Cooperative
		if err := rows.Scan(&c.ID, &c.Name, &c.RUC, &c.Type, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cooperative: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la cooperativa.
func (r *CooperativeRepo) Update(ctx context.Context, coop *entity.Cooperative) error {
	query := `
		UPDATE cooperatives SET name = $2, ruc = $3, type = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		coop.ID, coop.Name, coop.RUC, coop.Type, coop.Address, coop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cooperative: %w", err)
	}
	return nil
}
