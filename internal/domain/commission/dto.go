package commission

import (
	"time"

	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

// CalculateRequest runs (or re-runs) the engine for one pay period.
// EmployeeIDs optionally restricts the run; empty means every employee
// referenced by the period's data.
type CalculateRequest struct {
	PayPeriodID string   `json:"pay_period_id"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayPeriodID == "" {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "must be a valid UUID"})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineItemResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	JobID        string          `json:"job_id,omitempty"`
	JobNumber    string          `json:"job_number"`
	BusinessUnit string          `json:"business_unit"`
	Type         string          `json:"commission_type"`
	Revenue      decimal.Decimal `json:"revenue"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}

type EmployeeSummaryResponse struct {
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	RegularHours       decimal.Decimal `json:"regular_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	DoubleTimeHours    decimal.Decimal `json:"double_time_hours"`
	TotalHours         decimal.Decimal `json:"total_hours"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	HourlyPay          decimal.Decimal `json:"hourly_pay"`
	LeadGenCommission  decimal.Decimal `json:"lead_gen_commission"`
	SalesCommission    decimal.Decimal `json:"sales_commission"`
	WorkDoneCommission decimal.Decimal `json:"work_done_commission"`
	TotalCommission    decimal.Decimal `json:"total_commission"`
	CommissionPlan     string          `json:"commission_plan"`
	FinalPay           decimal.Decimal `json:"final_pay"`
}

type UnitSummaryResponse struct {
	BusinessUnit    string          `json:"business_unit"`
	JobCount        int             `json:"job_count"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	LeadGenTotal    decimal.Decimal `json:"lead_gen_total"`
	SalesTotal      decimal.Decimal `json:"sales_total"`
	WorkDoneTotal   decimal.Decimal `json:"work_done_total"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

type DiagnosticResponse struct {
	Code      string `json:"code"`
	JobNumber string `json:"job_number,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

type CalculationResponse struct {
	PayPeriodID       string                    `json:"pay_period_id"`
	LineItems         []LineItemResponse        `json:"line_items"`
	EmployeeSummaries []EmployeeSummaryResponse `json:"employee_summaries"`
	UnitSummaries     []UnitSummaryResponse     `json:"unit_summaries"`
	Diagnostics       []DiagnosticResponse      `json:"diagnostics"`
	CalculatedAt      time.Time                 `json:"calculated_at"`
}

// ========== BREAKDOWN / STORED SUMMARY DTOs ==========

type BreakdownLineResponse struct {
	JobID        string          `json:"job_id,omitempty"`
	JobNumber    string          `json:"job_number"`
	BusinessUnit string          `json:"business_unit"`
	JobDate      *string         `json:"job_date,omitempty"`
	Type         string          `json:"commission_type"`
	Revenue      decimal.Decimal `json:"revenue"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}

type JobBreakdownResponse struct {
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	PayPeriodID  string                  `json:"pay_period_id"`
	Lines        []BreakdownLineResponse `json:"lines"`
	Total        decimal.Decimal         `json:"total"`
}

type StoredSummaryResponse struct {
	PayPeriodID       string                    `json:"pay_period_id"`
	EmployeeSummaries []EmployeeSummaryResponse `json:"employee_summaries"`
	UnitSummaries     []UnitSummaryResponse     `json:"unit_summaries"`
}
