package response

import (
	"errors"
	"net/http"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNameExists):
		Conflict(w, "Employee name already exists")
	case errors.Is(err, employee.ErrOverrideNotFound):
		NotFound(w, "Rate override not found")

	// Business unit domain errors
	case errors.Is(err, businessunit.ErrBusinessUnitNotFound):
		NotFound(w, "Business unit not found")
	case errors.Is(err, businessunit.ErrBusinessUnitNameExists):
		Conflict(w, "Business unit name already exists")

	// Pay period domain errors
	case errors.Is(err, payperiod.ErrScheduleNotConfigured):
		NotFound(w, "Pay schedule is not configured")
	case errors.Is(err, payperiod.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrNoActivePeriod):
		NotFound(w, "No pay period contains the current date")
	case errors.Is(err, payperiod.ErrPeriodsHaveResults):
		Conflict(w, "Existing pay periods already have stored calculation results")

	// Dataset domain errors
	case errors.Is(err, dataset.ErrInvalidDatasetKind):
		BadRequest(w, "Dataset kind must be 'timesheet' or 'revenue'", nil)
	case errors.Is(err, dataset.ErrMissingRequiredColumns):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, dataset.ErrMalformedFile):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, dataset.ErrEmptyDataset):
		UnprocessableEntity(w, "Dataset contains no data rows")
	case errors.Is(err, dataset.ErrUploadNotFound):
		NotFound(w, "Upload batch not found")

	// Commission domain errors
	case errors.Is(err, commission.ErrNoResultsForPeriod):
		NotFound(w, "No calculation results stored for this pay period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
