package employee

import (
	"time"

	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== EMPLOYEE DTOs ==========

type CreateEmployeeRequest struct {
	EmployeeCode   *string         `json:"employee_code,omitempty"`
	Name           string          `json:"name"`
	Department     *string         `json:"department,omitempty"`
	HireDate       *string         `json:"hire_date,omitempty"` // YYYY-MM-DD
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	Status         string          `json:"status,omitempty"`
	CommissionPlan string          `json:"commission_plan,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Active, Inactive, Helper/Apprentice, Excluded from Payroll"})
	}
	if r.CommissionPlan != "" && !validator.IsInSlice(r.CommissionPlan, ValidCommissionPlans()) {
		errs = append(errs, validator.ValidationError{Field: "commission_plan", Message: "must be 'Hourly + Commission' or 'Efficiency Pay'"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string           `json:"-"`
	EmployeeCode   *string          `json:"employee_code,omitempty"`
	Name           *string          `json:"name,omitempty"`
	Department     *string          `json:"department,omitempty"`
	HireDate       *string          `json:"hire_date,omitempty"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status         *string          `json:"status,omitempty"`
	CommissionPlan *string          `json:"commission_plan,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Active, Inactive, Helper/Apprentice, Excluded from Payroll"})
	}
	if r.CommissionPlan != nil && !validator.IsInSlice(*r.CommissionPlan, ValidCommissionPlans()) {
		errs = append(errs, validator.ValidationError{Field: "commission_plan", Message: "must be 'Hourly + Commission' or 'Efficiency Pay'"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeCode   *string         `json:"employee_code,omitempty"`
	Name           string          `json:"name"`
	Department     *string         `json:"department,omitempty"`
	HireDate       *string         `json:"hire_date,omitempty"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	Status         string          `json:"status"`
	CommissionPlan string          `json:"commission_plan"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type EmployeeFilter struct {
	Status *string
	Plan   *string
	Search *string
	Limit  int
	Offset int
}

type EmployeeSummaryResponse struct {
	TotalEmployees            int             `json:"total_employees"`
	ActiveEmployees           int             `json:"active_employees"`
	InactiveEmployees         int             `json:"inactive_employees"`
	HelperApprenticeEmployees int             `json:"helper_apprentice_employees"`
	ExcludedEmployees         int             `json:"excluded_employees"`
	AvgHourlyRate             decimal.Decimal `json:"avg_hourly_rate"`
	EfficiencyPayCount        int             `json:"efficiency_pay_count"`
	HourlyPlusCommissionCount int             `json:"hourly_plus_commission_count"`
}

// ========== RATE OVERRIDE DTOs ==========

// UpsertRateOverrideRequest sets an employee's override for one business
// unit. Omitted rate fields keep falling through to the unit default.
type UpsertRateOverrideRequest struct {
	EmployeeID     string           `json:"-"`
	BusinessUnitID string           `json:"business_unit_id"`
	LeadGenRate    *decimal.Decimal `json:"lead_gen_rate,omitempty"`
	SalesRate      *decimal.Decimal `json:"sales_rate,omitempty"`
	WorkDoneRate   *decimal.Decimal `json:"work_done_rate,omitempty"`
}

func (r *UpsertRateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BusinessUnitID == "" {
		errs = append(errs, validator.ValidationError{Field: "business_unit_id", Message: "is required"})
	}
	errs = append(errs, validateRateField("lead_gen_rate", r.LeadGenRate)...)
	errs = append(errs, validateRateField("sales_rate", r.SalesRate)...)
	errs = append(errs, validateRateField("work_done_rate", r.WorkDoneRate)...)
	if r.LeadGenRate == nil && r.SalesRate == nil && r.WorkDoneRate == nil {
		errs = append(errs, validator.ValidationError{Field: "rates", Message: "at least one rate field is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var maxRatePercent = decimal.NewFromInt(100)

func validateRateField(field string, rate *decimal.Decimal) validator.ValidationErrors {
	if rate == nil {
		return nil
	}
	if rate.IsNegative() || rate.GreaterThan(maxRatePercent) {
		return validator.ValidationErrors{{Field: field, Message: "must be between 0 and 100"}}
	}
	return nil
}

type RateOverrideResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employee_id"`
	BusinessUnitID   string           `json:"business_unit_id"`
	BusinessUnitName *string          `json:"business_unit_name,omitempty"`
	LeadGenRate      *decimal.Decimal `json:"lead_gen_rate,omitempty"`
	SalesRate        *decimal.Decimal `json:"sales_rate,omitempty"`
	WorkDoneRate     *decimal.Decimal `json:"work_done_rate,omitempty"`
}
