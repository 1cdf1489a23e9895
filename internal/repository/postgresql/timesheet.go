package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

// BulkInsert implements timesheet.TimesheetRepository.
func (t *timesheetRepositoryImpl) BulkInsert(ctx context.Context, entries []timesheet.TimesheetEntry) (int, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO timesheet_entries (upload_id, employee_name, work_date, regular_hours, overtime_hours, double_time_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	inserted := 0
	for _, entry := range entries {
		_, err := q.Exec(ctx, query,
			entry.UploadID, entry.EmployeeName, entry.WorkDate,
			entry.RegularHours, entry.OvertimeHours, entry.DoubleTimeHours,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert timesheet entry for %q: %w", entry.EmployeeName, err)
		}
		inserted++
	}
	return inserted, nil
}

// GetForPeriod implements timesheet.TimesheetRepository. Dated entries are
// selected by the period's date range; undated entries belong to the period
// their upload batch was tagged with.
func (t *timesheetRepositoryImpl) GetForPeriod(ctx context.Context, payPeriodID string, start, end time.Time) ([]timesheet.TimesheetEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT t.id, t.upload_id, t.employee_name, t.work_date, t.regular_hours, t.overtime_hours, t.double_time_hours, t.created_at
		FROM timesheet_entries t
		LEFT JOIN upload_batches b ON t.upload_id = b.id
		WHERE (t.work_date BETWEEN $2::date AND $3::date)
		   OR (t.work_date IS NULL AND b.pay_period_id = $1)
		ORDER BY t.employee_name ASC, t.work_date ASC NULLS LAST, t.created_at ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheet entries for period: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimesheetEntry
	for rows.Next() {
		var entry timesheet.TimesheetEntry
		err := rows.Scan(
			&entry.ID, &entry.UploadID, &entry.EmployeeName, &entry.WorkDate,
			&entry.RegularHours, &entry.OvertimeHours, &entry.DoubleTimeHours, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// DeleteByUploadID implements timesheet.TimesheetRepository.
func (t *timesheetRepositoryImpl) DeleteByUploadID(ctx context.Context, uploadID string) (int64, error) {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, "DELETE FROM timesheet_entries WHERE upload_id = $1", uploadID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete timesheet entries for upload: %w", err)
	}
	return tag.RowsAffected(), nil
}
