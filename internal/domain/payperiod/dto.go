package payperiod

import (
	"time"

	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
)

const (
	MaxPayDelayDays    = 30
	MaxPeriodsPerBatch = 52
)

// ========== SCHEDULE CONFIG DTOs ==========

type UpsertScheduleConfigRequest struct {
	ScheduleType     string `json:"schedule_type"`
	FirstPeriodStart string `json:"first_period_start"` // YYYY-MM-DD
	PayDelayDays     int    `json:"pay_delay_days"`
}

func (r *UpsertScheduleConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ScheduleType, ValidScheduleTypes()) {
		errs = append(errs, validator.ValidationError{Field: "schedule_type", Message: "must be one of: Weekly, Bi-Weekly, Semi-Monthly, Monthly"})
	}
	if _, ok := validator.IsValidDate(r.FirstPeriodStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "first_period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.PayDelayDays < 0 || r.PayDelayDays > MaxPayDelayDays {
		errs = append(errs, validator.ValidationError{Field: "pay_delay_days", Message: "must be between 0 and 30"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleConfigResponse struct {
	ID               string    `json:"id"`
	ScheduleType     string    `json:"schedule_type"`
	FirstPeriodStart string    `json:"first_period_start"`
	PayDelayDays     int       `json:"pay_delay_days"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ========== PERIOD DTOs ==========

type GeneratePeriodsRequest struct {
	Count int `json:"count"`
	// Replace discards existing periods first. Refused when any existing
	// period has stored calculation results.
	Replace bool `json:"replace,omitempty"`
}

func (r *GeneratePeriodsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Count < 1 || r.Count > MaxPeriodsPerBatch {
		errs = append(errs, validator.ValidationError{Field: "count", Message: "must be between 1 and 52"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayPeriodResponse struct {
	ID           string `json:"id"`
	PeriodNumber int    `json:"period_number"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PayDate      string `json:"pay_date"`
	ScheduleType string `json:"schedule_type"`
	Status       string `json:"status"`
}

type PeriodStatsResponse struct {
	TotalPeriods        int     `json:"total_periods"`
	CurrentPeriodNumber *int    `json:"current_period_number,omitempty"`
	NextPayDate         *string `json:"next_pay_date,omitempty"`
	PeriodsRemaining    int     `json:"periods_remaining"`
	ScheduleType        *string `json:"schedule_type,omitempty"`
}
