package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

// BulkInsert implements job.JobRepository.
func (j *jobRepositoryImpl) BulkInsert(ctx context.Context, jobs []job.Job) (int, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		INSERT INTO jobs (upload_id, job_number, job_date, customer, business_unit, revenue, lead_generated_by, sold_by, technicians)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	inserted := 0
	for _, record := range jobs {
		_, err := q.Exec(ctx, query,
			record.UploadID, record.JobNumber, record.JobDate, record.Customer,
			record.BusinessUnit, record.Revenue, record.LeadGeneratedBy, record.SoldBy,
			record.Technicians,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert job %q: %w", record.JobNumber, err)
		}
		inserted++
	}
	return inserted, nil
}

// GetForPeriod implements job.JobRepository. Dated jobs are selected by the
// period's date range; undated jobs belong to the period their upload batch
// was tagged with.
func (j *jobRepositoryImpl) GetForPeriod(ctx context.Context, payPeriodID string, start, end time.Time) ([]job.Job, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT j.id, j.upload_id, j.job_number, j.job_date, j.customer, j.business_unit, j.revenue,
			j.lead_generated_by, j.sold_by, j.technicians, j.created_at
		FROM jobs j
		LEFT JOIN upload_batches b ON j.upload_id = b.id
		WHERE (j.job_date BETWEEN $2::date AND $3::date)
		   OR (j.job_date IS NULL AND b.pay_period_id = $1)
		ORDER BY j.job_number ASC, j.created_at ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs for period: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var record job.Job
		err := rows.Scan(
			&record.ID, &record.UploadID, &record.JobNumber, &record.JobDate, &record.Customer,
			&record.BusinessUnit, &record.Revenue, &record.LeadGeneratedBy, &record.SoldBy,
			&record.Technicians, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// DistinctNames implements job.JobRepository.
func (j *jobRepositoryImpl) DistinctNames(ctx context.Context, payPeriodID string, start, end time.Time) ([]string, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		WITH period_jobs AS (
			SELECT j.lead_generated_by, j.sold_by, j.technicians
			FROM jobs j
			LEFT JOIN upload_batches b ON j.upload_id = b.id
			WHERE (j.job_date BETWEEN $2::date AND $3::date)
			   OR (j.job_date IS NULL AND b.pay_period_id = $1)
		)
		SELECT DISTINCT name
		FROM (
			SELECT lead_generated_by AS name FROM period_jobs
			UNION ALL
			SELECT sold_by FROM period_jobs
			UNION ALL
			SELECT unnest(technicians) FROM period_jobs
		) refs
		WHERE name IS NOT NULL AND BTRIM(name) <> ''
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct job names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan job name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// DeleteByUploadID implements job.JobRepository.
func (j *jobRepositoryImpl) DeleteByUploadID(ctx context.Context, uploadID string) (int64, error) {
	q := GetQuerier(ctx, j.db)

	tag, err := q.Exec(ctx, "DELETE FROM jobs WHERE upload_id = $1", uploadID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete jobs for upload: %w", err)
	}
	return tag.RowsAffected(), nil
}
