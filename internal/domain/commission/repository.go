package commission

import "context"

// CommissionRepository defines data access methods for stored calculation
// results.
type CommissionRepository interface {
	// ReplaceResults atomically swaps the stored results for a period:
	// previous line items and summaries are deleted and the new set
	// inserted in one transaction, keeping recalculation idempotent.
	ReplaceResults(ctx context.Context, result CalculationResult) error

	GetLineItems(ctx context.Context, payPeriodID string) ([]CommissionLineItem, error)
	GetLineItemsByEmployee(ctx context.Context, payPeriodID, employeeID string) ([]CommissionLineItem, error)
	GetEmployeeSummaries(ctx context.Context, payPeriodID string) ([]EmployeePaySummary, error)
	GetUnitSummaries(ctx context.Context, payPeriodID string) ([]BusinessUnitSummary, error)
	GetBreakdown(ctx context.Context, payPeriodID, employeeID string) ([]JobBreakdownLine, error)
	CountLineItems(ctx context.Context, payPeriodID string) (int64, error)
}
