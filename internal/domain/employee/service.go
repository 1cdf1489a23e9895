package employee

import "context"

// EmployeeService defines business logic for roster management. Employees
// are deactivated rather than deleted.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	GetSummary(ctx context.Context) (EmployeeSummaryResponse, error)

	UpsertOverride(ctx context.Context, req UpsertRateOverrideRequest) (RateOverrideResponse, error)
	ListOverrides(ctx context.Context, employeeID string) ([]RateOverrideResponse, error)
	RemoveOverride(ctx context.Context, employeeID, businessUnitID string) error
}
