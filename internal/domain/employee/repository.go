package employee

import "context"

// EmployeeRepository defines data access methods for the employee roster
// and per-unit rate overrides.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByName(ctx context.Context, name string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	UpdateStatus(ctx context.Context, id string, status EmployeeStatus) error
	GetSummary(ctx context.Context) (EmployeeSummary, error)

	// Overrides
	UpsertOverride(ctx context.Context, override RateOverride) (RateOverride, error)
	GetOverridesByEmployeeID(ctx context.Context, employeeID string) ([]RateOverride, error)
	GetAllOverrides(ctx context.Context) ([]RateOverride, error)
	DeleteOverride(ctx context.Context, employeeID, businessUnitID string) error
}
