package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// DatasetKind enum
type DatasetKind string

const (
	DatasetKindTimesheet DatasetKind = "timesheet"
	DatasetKindRevenue   DatasetKind = "revenue"
)

func ValidKinds() []string {
	return []string{string(DatasetKindTimesheet), string(DatasetKindRevenue)}
}

// RawTable - an uploaded tabular dataset before validation
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Row error types
const (
	ErrorTypeMissingValue  = "missing_value"
	ErrorTypeInvalidNumber = "invalid_number"
	ErrorTypeInvalidDate   = "invalid_date"
	ErrorTypeSummaryRow    = "summary_row"
	ErrorTypeZeroRevenue   = "zero_revenue"
	ErrorTypeDuplicateJob  = "duplicate_job"
)

// RowError - one per-row validation finding. Row numbers are 1-based data
// rows (the header row is row 0).
type RowError struct {
	Row       int
	Column    string
	ErrorType string
	Message   string
	Value     string
}

// UploadStats - counts from one validation pass
type UploadStats struct {
	TotalRows     int
	ValidRows     int
	InvalidRows   int
	DuplicateRows int
	ColumnsFound  []string
}

// UploadBatch - a stored upload with its validation outcome. The raw file
// is kept in file storage under StoredPath.
type UploadBatch struct {
	ID            string
	Kind          DatasetKind
	OriginalName  string
	StoredPath    string
	PayPeriodID   *string
	TotalRows     int
	ValidRows     int
	InvalidRows   int
	DuplicateRows int
	QualityScore  decimal.Decimal
	CreatedAt     time.Time
}
