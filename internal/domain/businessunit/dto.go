package businessunit

import (
	"time"

	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== BUSINESS UNIT DTOs ==========

type CreateBusinessUnitRequest struct {
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Enabled      *bool            `json:"enabled,omitempty"`
	LeadGenRate  *decimal.Decimal `json:"lead_gen_rate,omitempty"`
	SalesRate    *decimal.Decimal `json:"sales_rate,omitempty"`
	WorkDoneRate *decimal.Decimal `json:"work_done_rate,omitempty"`
}

func (r *CreateBusinessUnitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	errs = append(errs, validateRatePercent("lead_gen_rate", r.LeadGenRate)...)
	errs = append(errs, validateRatePercent("sales_rate", r.SalesRate)...)
	errs = append(errs, validateRatePercent("work_done_rate", r.WorkDoneRate)...)

	if sum, ok := rateSum(r.LeadGenRate, r.SalesRate, r.WorkDoneRate); ok && sum.GreaterThan(maxRatePercent) {
		errs = append(errs, validator.ValidationError{Field: "rates", Message: "combined rates must not exceed 100% of job revenue"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBusinessUnitRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Enabled      *bool            `json:"enabled,omitempty"`
	LeadGenRate  *decimal.Decimal `json:"lead_gen_rate,omitempty"`
	SalesRate    *decimal.Decimal `json:"sales_rate,omitempty"`
	WorkDoneRate *decimal.Decimal `json:"work_done_rate,omitempty"`
}

func (r *UpdateBusinessUnitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	errs = append(errs, validateRatePercent("lead_gen_rate", r.LeadGenRate)...)
	errs = append(errs, validateRatePercent("sales_rate", r.SalesRate)...)
	errs = append(errs, validateRatePercent("work_done_rate", r.WorkDoneRate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var maxRatePercent = decimal.NewFromInt(100)

func validateRatePercent(field string, rate *decimal.Decimal) validator.ValidationErrors {
	if rate == nil {
		return nil
	}
	if rate.IsNegative() || rate.GreaterThan(maxRatePercent) {
		return validator.ValidationErrors{{Field: field, Message: "must be between 0 and 100"}}
	}
	return nil
}

func rateSum(rates ...*decimal.Decimal) (decimal.Decimal, bool) {
	sum := decimal.Zero
	any := false
	for _, r := range rates {
		if r != nil {
			sum = sum.Add(*r)
			any = true
		}
	}
	return sum, any
}

type BusinessUnitResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Enabled      bool            `json:"enabled"`
	AutoAdded    bool            `json:"auto_added"`
	LeadGenRate  decimal.Decimal `json:"lead_gen_rate"`
	SalesRate    decimal.Decimal `json:"sales_rate"`
	WorkDoneRate decimal.Decimal `json:"work_done_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BusinessUnitFilter struct {
	EnabledOnly bool
	Search      *string
}

// ========== SETUP VALIDATION DTOs ==========

// ValidateSetupRequest optionally scopes the data cross-checks to the jobs
// stored for one pay period.
type ValidateSetupRequest struct {
	PayPeriodID *string `json:"pay_period_id,omitempty"`
}

type SetupIssueResponse struct {
	Severity string `json:"severity"`
	Scope    string `json:"scope"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type ValidateSetupResponse struct {
	Valid    bool                 `json:"valid"`
	Errors   []SetupIssueResponse `json:"errors"`
	Warnings []SetupIssueResponse `json:"warnings"`
}
