package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

var _ repository.UploadRepository = (*UploadRepo)(nil)

const uploadColumns = `id, cooperative_id, user_id, user_name, module, file_name, year, month, status, records_count, message, created_at`

// UploadRepo implementación del puerto UploadRepository sobre PostgreSQL.
type UploadRepo struct {
	pool *pgxpool.Pool
}

// NewUploadRepository construye el adaptador de persistencia del historial de cargas.
func NewUploadRepository(pool *pgxpool.Pool) *UploadRepo {
	return &UploadRepo{pool: pool}
}

// Create registra una carga en el historial.
func (r *UploadRepo) Create(ctx context.Context, rec *entity.UploadRecord) error {
	query := `
		INSERT INTO upload_records (id, cooperative_id, user_id, user_name, module, file_name, year, month, status, records_count, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.CooperativeID, rec.UserID, rec.UserName, rec.Module, rec.FileName,
		rec.Year, rec.Month, rec.Status, rec.RecordsCount, rec.Message, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert upload record: %w", err)
	}
	return nil
}

// History devuelve las últimas cargas de la cooperativa.
func (r *UploadRepo) History(ctx context.Context, cooperativeID string, limit int) ([]*entity.UploadRecord, error) {
	query := `
		SELECT ` + uploadColumns + `
		FROM upload_records
		WHERE cooperative_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, cooperativeID, limit)
	if err != nil {
		return nil, fmt.Errorf("upload history: %w", err)
	}
	defer rows.Close()

	var list []*entity.UploadRecord
	for rows.Next() {
		rec, err := scanUploadRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// LatestByModule devuelve la última carga exitosa de cada módulo.
func (r *UploadRepo) LatestByModule(ctx context.Context, cooperativeID string) (map[string]*entity.UploadRecord, error) {
	query := `
		SELECT DISTINCT ON (module) ` + uploadColumns + `
		FROM upload_records
		WHERE cooperative_id = $1 AND status IN ('success', 'partial')
		ORDER BY module, created_at DESC`
	rows, err := r.pool.Query(ctx, query, cooperativeID)
	if err != nil {
		return nil, fmt.Errorf("latest uploads: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.UploadRecord)
	for rows.Next() {
		rec, err := scanUploadRecord(rows)
		if err != nil {
			return nil, err
		}
		out[rec.Module] = rec
	}
	return out, rows.Err()
}

func scanUploadRecord(row pgx.Row) (*entity.UploadRecord, error) {
	var rec entity.UploadRecord
	if err := row.Scan(
		&rec.ID, &rec.CooperativeID, &rec.UserID, &rec.UserName, &rec.Module, &rec.FileName,
		&rec.Year, &rec.Month, &rec.Status, &rec.RecordsCount, &rec.Message, &rec.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan upload record: %w", err)
	}
	return &rec, nil
}
