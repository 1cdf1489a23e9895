package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetEntry - validated hours for one employee name, either one worked
// day or a pre-aggregated period total (WorkDate nil). Employee names are
// matched against the roster at calculation time, not at ingest.
type TimesheetEntry struct {
	ID              string
	UploadID        *string
	EmployeeName    string
	WorkDate        *time.Time
	RegularHours    decimal.Decimal
	OvertimeHours   decimal.Decimal
	DoubleTimeHours decimal.Decimal
	CreatedAt       time.Time
}

// TotalHours returns the unweighted sum of the three hour categories.
func (e TimesheetEntry) TotalHours() decimal.Decimal {
	return e.RegularHours.Add(e.OvertimeHours).Add(e.DoubleTimeHours)
}
