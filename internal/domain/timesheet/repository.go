package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access methods for validated timesheet
// rows.
type TimesheetRepository interface {
	BulkInsert(ctx context.Context, entries []TimesheetEntry) (int, error)

	// GetForPeriod returns entries dated inside [start, end] plus undated
	// entries whose upload batch targeted the period.
	GetForPeriod(ctx context.Context, payPeriodID string, start, end time.Time) ([]TimesheetEntry, error)

	DeleteByUploadID(ctx context.Context, uploadID string) (int64, error)
}
