package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionType enum
type CommissionType string

const (
	CommissionTypeLeadGeneration CommissionType = "Lead Generation"
	CommissionTypeSales          CommissionType = "Sales"
	CommissionTypeWorkDone       CommissionType = "Work Done"
)

// CommissionLineItem - one commission payment for one employee on one job.
// A job emits zero or more line items: one per applicable category per
// eligible employee. Amounts carry full decimal precision; rounding to two
// places happens only in the response mapping.
type CommissionLineItem struct {
	ID           string
	PayPeriodID  string
	EmployeeID   string
	EmployeeName string
	JobID        string
	JobNumber    string
	BusinessUnit string
	Type         CommissionType
	Revenue      decimal.Decimal
	Rate         decimal.Decimal // fraction of revenue, e.g. 0.45
	Amount       decimal.Decimal
	CreatedAt    time.Time
}

// EmployeePaySummary - per-employee rollup for one period, including the
// hourly-vs-commission reconciliation.
type EmployeePaySummary struct {
	ID                 string
	PayPeriodID        string
	EmployeeID         string
	EmployeeName       string
	RegularHours       decimal.Decimal
	OvertimeHours      decimal.Decimal
	DoubleTimeHours    decimal.Decimal
	TotalHours         decimal.Decimal
	HourlyRate         decimal.Decimal
	HourlyPay          decimal.Decimal
	LeadGenCommission  decimal.Decimal
	SalesCommission    decimal.Decimal
	WorkDoneCommission decimal.Decimal
	TotalCommission    decimal.Decimal
	CommissionPlan     string
	FinalPay           decimal.Decimal
	CreatedAt          time.Time
}

// BusinessUnitSummary - per-unit rollup for one period
type BusinessUnitSummary struct {
	ID              string
	PayPeriodID     string
	BusinessUnit    string
	JobCount        int
	TotalRevenue    decimal.Decimal
	LeadGenTotal    decimal.Decimal
	SalesTotal      decimal.Decimal
	WorkDoneTotal   decimal.Decimal
	TotalCommission decimal.Decimal
	CreatedAt       time.Time
}

// Diagnostic codes emitted by a calculation run
const (
	DiagnosticUnknownEmployee    = "unknown_employee"
	DiagnosticIneligibleEmployee = "ineligible_employee"
	DiagnosticUnitNotConfigured  = "unit_not_configured"
	DiagnosticUnitDisabled       = "unit_disabled"
	DiagnosticNoEligibleTechs    = "no_eligible_technicians"
	DiagnosticUnmatchedTimesheet = "unmatched_timesheet_name"
)

// Diagnostic - one skip-and-report finding from a calculation run. Skipped
// references never abort the run and never silently zero a value; each one
// is counted here.
type Diagnostic struct {
	Code      string
	JobNumber string
	Subject   string
	Message   string
}

// CalculationResult - the complete output of one run
type CalculationResult struct {
	PayPeriodID       string
	LineItems         []CommissionLineItem
	EmployeeSummaries []EmployeePaySummary
	UnitSummaries     []BusinessUnitSummary
	Diagnostics       []Diagnostic
	CalculatedAt      time.Time
}

// JobBreakdownLine - one line of the per-employee job-by-job explanation
type JobBreakdownLine struct {
	JobID        string
	JobNumber    string
	BusinessUnit string
	JobDate      *time.Time
	Type         CommissionType
	Revenue      decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal
}
