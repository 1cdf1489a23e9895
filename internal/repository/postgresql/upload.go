package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type uploadRepositoryImpl struct {
	db *database.DB
}

func NewUploadRepository(db *database.DB) dataset.UploadRepository {
	return &uploadRepositoryImpl{db: db}
}

// CreateBatch implements dataset.UploadRepository.
func (u *uploadRepositoryImpl) CreateBatch(ctx context.Context, batch dataset.UploadBatch) (dataset.UploadBatch, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		INSERT INTO upload_batches (kind, original_name, stored_path, pay_period_id, total_rows, valid_rows, invalid_rows, duplicate_rows, quality_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, kind, original_name, stored_path, pay_period_id, total_rows, valid_rows, invalid_rows, duplicate_rows, quality_score, created_at
	`

	var created dataset.UploadBatch
	err := q.QueryRow(ctx, query,
		batch.Kind, batch.OriginalName, batch.StoredPath, batch.PayPeriodID,
		batch.TotalRows, batch.ValidRows, batch.InvalidRows, batch.DuplicateRows,
		batch.QualityScore,
	).Scan(
		&created.ID, &created.Kind, &created.OriginalName, &created.StoredPath, &created.PayPeriodID,
		&created.TotalRows, &created.ValidRows, &created.InvalidRows, &created.DuplicateRows,
		&created.QualityScore, &created.CreatedAt,
	)
	if err != nil {
		return dataset.UploadBatch{}, fmt.Errorf("failed to create upload batch: %w", err)
	}

	return created, nil
}

// GetBatchByID implements dataset.UploadRepository.
func (u *uploadRepositoryImpl) GetBatchByID(ctx context.Context, id string) (dataset.UploadBatch, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, kind, original_name, stored_path, pay_period_id, total_rows, valid_rows, invalid_rows, duplicate_rows, quality_score, created_at
		FROM upload_batches
		WHERE id = $1
	`

	var batch dataset.UploadBatch
	err := q.QueryRow(ctx, query, id).Scan(
		&batch.ID, &batch.Kind, &batch.OriginalName, &batch.StoredPath, &batch.PayPeriodID,
		&batch.TotalRows, &batch.ValidRows, &batch.InvalidRows, &batch.DuplicateRows,
		&batch.QualityScore, &batch.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return dataset.UploadBatch{}, dataset.ErrUploadNotFound
		}
		return dataset.UploadBatch{}, fmt.Errorf("failed to get upload batch: %w", err)
	}

	return batch, nil
}

// ListBatches implements dataset.UploadRepository.
func (u *uploadRepositoryImpl) ListBatches(ctx context.Context, limit int) ([]dataset.UploadBatch, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, kind, original_name, stored_path, pay_period_id, total_rows, valid_rows, invalid_rows, duplicate_rows, quality_score, created_at
		FROM upload_batches
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload batches: %w", err)
	}
	defer rows.Close()

	var batches []dataset.UploadBatch
	for rows.Next() {
		var batch dataset.UploadBatch
		err := rows.Scan(
			&batch.ID, &batch.Kind, &batch.OriginalName, &batch.StoredPath, &batch.PayPeriodID,
			&batch.TotalRows, &batch.ValidRows, &batch.InvalidRows, &batch.DuplicateRows,
			&batch.QualityScore, &batch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
