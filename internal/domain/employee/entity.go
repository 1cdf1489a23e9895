package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus enum
type EmployeeStatus string

const (
	EmployeeStatusActive              EmployeeStatus = "Active"
	EmployeeStatusInactive            EmployeeStatus = "Inactive"
	EmployeeStatusHelperApprentice    EmployeeStatus = "Helper/Apprentice"
	EmployeeStatusExcludedFromPayroll EmployeeStatus = "Excluded from Payroll"
)

func ValidStatuses() []string {
	return []string{
		string(EmployeeStatusActive),
		string(EmployeeStatusInactive),
		string(EmployeeStatusHelperApprentice),
		string(EmployeeStatusExcludedFromPayroll),
	}
}

// CommissionPlan enum
type CommissionPlan string

const (
	CommissionPlanHourlyPlusCommission CommissionPlan = "Hourly + Commission"
	CommissionPlanEfficiencyPay        CommissionPlan = "Efficiency Pay"
)

func ValidCommissionPlans() []string {
	return []string{
		string(CommissionPlanHourlyPlusCommission),
		string(CommissionPlanEfficiencyPay),
	}
}

// Employee - a payable worker. Employees are never deleted, only deactivated,
// so stored calculation results keep resolving against the roster they were
// computed from.
type Employee struct {
	ID             string
	EmployeeCode   *string
	Name           string
	Department     *string
	HireDate       *time.Time
	HourlyRate     decimal.Decimal
	Status         EmployeeStatus
	CommissionPlan CommissionPlan
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCommissionEligible reports whether the employee may receive commission.
// Only Active employees are eligible; Helper/Apprentice and Excluded from
// Payroll never are, regardless of their role on a job.
func (e Employee) IsCommissionEligible() bool {
	return e.Status == EmployeeStatusActive
}

// RateOverride - per-business-unit commission rate override for one employee.
// Nil rate fields fall back to the unit default field-by-field.
type RateOverride struct {
	ID             string
	EmployeeID     string
	BusinessUnitID string
	LeadGenRate    *decimal.Decimal
	SalesRate      *decimal.Decimal
	WorkDoneRate   *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	BusinessUnitName *string
}

// EmployeeSummary - aggregate roster statistics
type EmployeeSummary struct {
	TotalEmployees            int
	ActiveEmployees           int
	InactiveEmployees         int
	HelperApprenticeEmployees int
	ExcludedEmployees         int
	AvgHourlyRate             decimal.Decimal
	EfficiencyPayCount        int
	HourlyPlusCommissionCount int
}
