package businessunit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BusinessUnitServiceImpl struct {
	unitRepo      businessunit.BusinessUnitRepository
	employeeRepo  employee.EmployeeRepository
	jobRepo       job.JobRepository
	payPeriodRepo payperiod.PayPeriodRepository
}

func NewBusinessUnitService(
	unitRepo businessunit.BusinessUnitRepository,
	employeeRepo employee.EmployeeRepository,
	jobRepo job.JobRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
) businessunit.BusinessUnitService {
	return &BusinessUnitServiceImpl{
		unitRepo:      unitRepo,
		employeeRepo:  employeeRepo,
		jobRepo:       jobRepo,
		payPeriodRepo: payPeriodRepo,
	}
}

// ========== CONFIGURATION ==========

func (s *BusinessUnitServiceImpl) Create(ctx context.Context, req businessunit.CreateBusinessUnitRequest) (businessunit.BusinessUnitResponse, error) {
	if err := req.Validate(); err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.unitRepo.GetByName(ctx, name); err == nil {
		return businessunit.BusinessUnitResponse{}, businessunit.ErrBusinessUnitNameExists
	} else if !errors.Is(err, businessunit.ErrBusinessUnitNotFound) {
		return businessunit.BusinessUnitResponse{}, err
	}

	unit := businessunit.BusinessUnit{
		Name:         name,
		Description:  req.Description,
		Enabled:      true,
		LeadGenRate:  decimal.Zero,
		SalesRate:    decimal.Zero,
		WorkDoneRate: decimal.Zero,
	}
	if req.Enabled != nil {
		unit.Enabled = *req.Enabled
	}
	if req.LeadGenRate != nil {
		unit.LeadGenRate = *req.LeadGenRate
	}
	if req.SalesRate != nil {
		unit.SalesRate = *req.SalesRate
	}
	if req.WorkDoneRate != nil {
		unit.WorkDoneRate = *req.WorkDoneRate
	}

	created, err := s.unitRepo.Create(ctx, unit)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}

	slog.Info("business unit created", "business_unit_id", created.ID, "name", created.Name)
	return mapToBusinessUnitResponse(created), nil
}

func (s *BusinessUnitServiceImpl) GetByID(ctx context.Context, id string) (businessunit.BusinessUnitResponse, error) {
	if !validator.IsValidUUID(id) {
		return businessunit.BusinessUnitResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}

	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}
	return mapToBusinessUnitResponse(unit), nil
}

func (s *BusinessUnitServiceImpl) List(ctx context.Context, filter businessunit.BusinessUnitFilter) ([]businessunit.BusinessUnitResponse, error) {
	units, err := s.unitRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]businessunit.BusinessUnitResponse, 0, len(units))
	for _, unit := range units {
		responses = append(responses, mapToBusinessUnitResponse(unit))
	}
	return responses, nil
}

func (s *BusinessUnitServiceImpl) Update(ctx context.Context, req businessunit.UpdateBusinessUnitRequest) (businessunit.BusinessUnitResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return businessunit.BusinessUnitResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}
	if err := req.Validate(); err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}

	current, err := s.unitRepo.GetByID(ctx, req.ID)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
		if existing, err := s.unitRepo.GetByName(ctx, name); err == nil && existing.ID != req.ID {
			return businessunit.BusinessUnitResponse{}, businessunit.ErrBusinessUnitNameExists
		} else if err != nil && !errors.Is(err, businessunit.ErrBusinessUnitNotFound) {
			return businessunit.BusinessUnitResponse{}, err
		}
	}

	// The partial update may push the combined rates past the revenue cap
	// even when each changed rate is valid on its own.
	merged := current
	if req.LeadGenRate != nil {
		merged.LeadGenRate = *req.LeadGenRate
	}
	if req.SalesRate != nil {
		merged.SalesRate = *req.SalesRate
	}
	if req.WorkDoneRate != nil {
		merged.WorkDoneRate = *req.WorkDoneRate
	}
	if merged.RateSum().GreaterThan(maxRatePercent) {
		return businessunit.BusinessUnitResponse{}, validator.ValidationErrors{
			{Field: "rates", Message: "combined rates must not exceed 100% of job revenue"},
		}
	}

	updated, err := s.unitRepo.Update(ctx, req)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, err
	}
	return mapToBusinessUnitResponse(updated), nil
}

var maxRatePercent = decimal.NewFromInt(100)

// ========== SETUP VALIDATION ==========

func (s *BusinessUnitServiceImpl) ValidateSetup(ctx context.Context, req businessunit.ValidateSetupRequest) (businessunit.ValidateSetupResponse, error) {
	if req.PayPeriodID != nil && !validator.IsValidUUID(*req.PayPeriodID) {
		return businessunit.ValidateSetupResponse{}, validator.ValidationErrors{
			{Field: "pay_period_id", Message: "must be a valid UUID"},
		}
	}

	units, err := s.unitRepo.List(ctx, businessunit.BusinessUnitFilter{})
	if err != nil {
		return businessunit.ValidateSetupResponse{}, fmt.Errorf("failed to list business units: %w", err)
	}
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return businessunit.ValidateSetupResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}
	overrides, err := s.employeeRepo.GetAllOverrides(ctx)
	if err != nil {
		return businessunit.ValidateSetupResponse{}, fmt.Errorf("failed to load rate overrides: %w", err)
	}

	var issues []businessunit.SetupIssue

	unitIDs := make(map[string]bool, len(units))
	unitsByName := make(map[string]businessunit.BusinessUnit, len(units))
	for _, unit := range units {
		unitIDs[unit.ID] = true
		unitsByName[foldName(unit.Name)] = unit

		if unit.Enabled && !unit.HasRates() {
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityWarning,
				Scope:    "business_unit",
				Subject:  unit.Name,
				Message:  "enabled but has no commission rates configured",
			})
		}
		if sum := unit.RateSum(); sum.GreaterThan(maxRatePercent) {
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityError,
				Scope:    "business_unit",
				Subject:  unit.Name,
				Message:  fmt.Sprintf("combined rates are %s%%, above the 100%% revenue cap", sum.String()),
			})
		}
	}

	employeeIDs := make(map[string]bool, len(employees))
	employeesByName := make(map[string]bool, len(employees))
	for _, emp := range employees {
		employeeIDs[emp.ID] = true
		employeesByName[foldName(emp.Name)] = true
	}

	for _, override := range overrides {
		if !employeeIDs[override.EmployeeID] {
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityError,
				Scope:    "rate_override",
				Subject:  override.EmployeeID,
				Message:  "rate override references an employee that does not exist",
			})
		}
		if !unitIDs[override.BusinessUnitID] {
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityError,
				Scope:    "rate_override",
				Subject:  override.BusinessUnitID,
				Message:  "rate override references a business unit that does not exist",
			})
		}
	}

	if req.PayPeriodID != nil {
		periodIssues, err := s.validatePeriodReferences(ctx, *req.PayPeriodID, employeesByName, unitsByName)
		if err != nil {
			return businessunit.ValidateSetupResponse{}, err
		}
		issues = append(issues, periodIssues...)
	}

	return mapToValidateSetupResponse(issues), nil
}

// validatePeriodReferences cross-checks the names stored in one period's
// revenue data against the roster and the unit table.
func (s *BusinessUnitServiceImpl) validatePeriodReferences(
	ctx context.Context,
	payPeriodID string,
	employeesByName map[string]bool,
	unitsByName map[string]businessunit.BusinessUnit,
) ([]businessunit.SetupIssue, error) {
	period, err := s.payPeriodRepo.GetByID(ctx, payPeriodID)
	if err != nil {
		return nil, err
	}

	var issues []businessunit.SetupIssue

	names, err := s.jobRepo.DistinctNames(ctx, period.ID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load job name references: %w", err)
	}
	for _, name := range names {
		if !employeesByName[foldName(name)] {
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityWarning,
				Scope:    "employee_reference",
				Subject:  strings.TrimSpace(name),
				Message:  "credited in the period's revenue data but not found in the employee roster",
			})
		}
	}

	jobs, err := s.jobRepo.GetForPeriod(ctx, period.ID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load period jobs: %w", err)
	}
	seenUnits := make(map[string]bool)
	for _, j := range jobs {
		key := foldName(j.BusinessUnit)
		if key == "" || seenUnits[key] {
			continue
		}
		seenUnits[key] = true

		unit, ok := unitsByName[key]
		switch {
		case !ok:
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityError,
				Scope:    "business_unit",
				Subject:  strings.TrimSpace(j.BusinessUnit),
				Message:  "referenced by the period's revenue data but not configured",
			})
		case !unit.Enabled:
			issues = append(issues, businessunit.SetupIssue{
				Severity: businessunit.SetupIssueSeverityWarning,
				Scope:    "business_unit",
				Subject:  unit.Name,
				Message:  "disabled; the period's jobs for this unit will be skipped by calculation",
			})
		}
	}

	return issues, nil
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ========== RESPONSE MAPPING ==========

func mapToBusinessUnitResponse(unit businessunit.BusinessUnit) businessunit.BusinessUnitResponse {
	return businessunit.BusinessUnitResponse{
		ID:           unit.ID,
		Name:         unit.Name,
		Description:  unit.Description,
		Enabled:      unit.Enabled,
		AutoAdded:    unit.AutoAdded,
		LeadGenRate:  unit.LeadGenRate,
		SalesRate:    unit.SalesRate,
		WorkDoneRate: unit.WorkDoneRate,
		CreatedAt:    unit.CreatedAt,
		UpdatedAt:    unit.UpdatedAt,
	}
}

func mapToValidateSetupResponse(issues []businessunit.SetupIssue) businessunit.ValidateSetupResponse {
	response := businessunit.ValidateSetupResponse{
		Errors:   []businessunit.SetupIssueResponse{},
		Warnings: []businessunit.SetupIssueResponse{},
	}
	for _, issue := range issues {
		mapped := businessunit.SetupIssueResponse{
			Severity: string(issue.Severity),
			Scope:    issue.Scope,
			Subject:  issue.Subject,
			Message:  issue.Message,
		}
		if issue.Severity == businessunit.SetupIssueSeverityError {
			response.Errors = append(response.Errors, mapped)
		} else {
			response.Warnings = append(response.Warnings, mapped)
		}
	}
	response.Valid = len(response.Errors) == 0
	return response
}
