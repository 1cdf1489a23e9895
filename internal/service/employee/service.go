package employee

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	unitRepo     businessunit.BusinessUnitRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	unitRepo businessunit.BusinessUnitRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		unitRepo:     unitRepo,
	}
}

// ========== ROSTER ==========

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByName(ctx, req.Name); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNameExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		EmployeeCode:   req.EmployeeCode,
		Name:           req.Name,
		Department:     req.Department,
		HourlyRate:     req.HourlyRate,
		Status:         employee.EmployeeStatusActive,
		CommissionPlan: employee.CommissionPlanHourlyPlusCommission,
	}
	if req.Status != "" {
		emp.Status = employee.EmployeeStatus(req.Status)
	}
	if req.CommissionPlan != "" {
		emp.CommissionPlan = employee.CommissionPlan(req.CommissionPlan)
	}
	if req.HireDate != nil {
		if hireDate, ok := validator.IsValidDate(*req.HireDate); ok {
			emp.HireDate = &hireDate
		}
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "name", created.Name)
	return mapToEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapToEmployeeResponse(emp))
	}
	return responses, total, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		if existing, err := s.employeeRepo.GetByName(ctx, *req.Name); err == nil && existing.ID != req.ID {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNameExists
		} else if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(updated), nil
}

// Deactivate flips an employee to Inactive. Rows are never deleted, so
// stored calculation results keep their employee references.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "must be a valid UUID"}}
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.UpdateStatus(ctx, emp.ID, employee.EmployeeStatusInactive); err != nil {
		return err
	}

	slog.Info("employee deactivated", "employee_id", emp.ID, "name", emp.Name)
	return nil
}

func (s *EmployeeServiceImpl) GetSummary(ctx context.Context) (employee.EmployeeSummaryResponse, error) {
	summary, err := s.employeeRepo.GetSummary(ctx)
	if err != nil {
		return employee.EmployeeSummaryResponse{}, err
	}
	return employee.EmployeeSummaryResponse{
		TotalEmployees:            summary.TotalEmployees,
		ActiveEmployees:           summary.ActiveEmployees,
		InactiveEmployees:         summary.InactiveEmployees,
		HelperApprenticeEmployees: summary.HelperApprenticeEmployees,
		ExcludedEmployees:         summary.ExcludedEmployees,
		AvgHourlyRate:             summary.AvgHourlyRate.Round(2),
		EfficiencyPayCount:        summary.EfficiencyPayCount,
		HourlyPlusCommissionCount: summary.HourlyPlusCommissionCount,
	}, nil
}

// ========== RATE OVERRIDES ==========

func (s *EmployeeServiceImpl) UpsertOverride(ctx context.Context, req employee.UpsertRateOverrideRequest) (employee.RateOverrideResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if req.BusinessUnitID != "" && !validator.IsValidUUID(req.BusinessUnitID) {
		errs = append(errs, validator.ValidationError{Field: "business_unit_id", Message: "must be a valid UUID"})
	}
	if len(errs) > 0 {
		return employee.RateOverrideResponse{}, errs
	}
	if err := req.Validate(); err != nil {
		return employee.RateOverrideResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.RateOverrideResponse{}, err
	}
	if _, err := s.unitRepo.GetByID(ctx, req.BusinessUnitID); err != nil {
		return employee.RateOverrideResponse{}, err
	}

	override, err := s.employeeRepo.UpsertOverride(ctx, employee.RateOverride{
		EmployeeID:     req.EmployeeID,
		BusinessUnitID: req.BusinessUnitID,
		LeadGenRate:    req.LeadGenRate,
		SalesRate:      req.SalesRate,
		WorkDoneRate:   req.WorkDoneRate,
	})
	if err != nil {
		return employee.RateOverrideResponse{}, err
	}
	return mapToRateOverrideResponse(override), nil
}

func (s *EmployeeServiceImpl) ListOverrides(ctx context.Context, employeeID string) ([]employee.RateOverrideResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "must be a valid UUID"}}
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	overrides, err := s.employeeRepo.GetOverridesByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.RateOverrideResponse, 0, len(overrides))
	for _, override := range overrides {
		responses = append(responses, mapToRateOverrideResponse(override))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) RemoveOverride(ctx context.Context, employeeID, businessUnitID string) error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidUUID(businessUnitID) {
		errs = append(errs, validator.ValidationError{Field: "business_unit_id", Message: "must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}

	return s.employeeRepo.DeleteOverride(ctx, employeeID, businessUnitID)
}

// ========== RESPONSE MAPPING ==========

func mapToEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	response := employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		Name:           emp.Name,
		Department:     emp.Department,
		HourlyRate:     emp.HourlyRate,
		Status:         string(emp.Status),
		CommissionPlan: string(emp.CommissionPlan),
		CreatedAt:      emp.CreatedAt,
		UpdatedAt:      emp.UpdatedAt,
	}
	if emp.HireDate != nil {
		formatted := emp.HireDate.Format(time.DateOnly)
		response.HireDate = &formatted
	}
	return response
}

func mapToRateOverrideResponse(override employee.RateOverride) employee.RateOverrideResponse {
	return employee.RateOverrideResponse{
		ID:               override.ID,
		EmployeeID:       override.EmployeeID,
		BusinessUnitID:   override.BusinessUnitID,
		BusinessUnitName: override.BusinessUnitName,
		LeadGenRate:      override.LeadGenRate,
		SalesRate:        override.SalesRate,
		WorkDoneRate:     override.WorkDoneRate,
	}
}
