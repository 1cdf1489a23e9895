package job

import (
	"context"
	"time"
)

// JobRepository defines data access methods for validated revenue records.
type JobRepository interface {
	BulkInsert(ctx context.Context, jobs []Job) (int, error)

	// GetForPeriod returns jobs dated inside [start, end] plus undated jobs
	// whose upload batch targeted the period.
	GetForPeriod(ctx context.Context, payPeriodID string, start, end time.Time) ([]Job, error)

	// DistinctNames returns every employee name referenced by the period's
	// jobs across the three role fields, de-duplicated.
	DistinctNames(ctx context.Context, payPeriodID string, start, end time.Time) ([]string, error)

	DeleteByUploadID(ctx context.Context, uploadID string) (int64, error)
}
