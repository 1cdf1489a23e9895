package commission

import "context"

// CommissionService runs the calculation engine and serves its stored
// outputs.
type CommissionService interface {
	// Calculate loads an immutable snapshot of configuration plus the
	// period's validated data, runs the engine, and replaces the stored
	// results for that period. Identical inputs produce identical results.
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error)

	// GetJobBreakdown explains one employee's pay for one period as the
	// ordered list of per-job commission lines.
	GetJobBreakdown(ctx context.Context, employeeID, payPeriodID string) (JobBreakdownResponse, error)

	// GetSummary returns the stored rollups of the last run for a period.
	GetSummary(ctx context.Context, payPeriodID string) (StoredSummaryResponse, error)
}
