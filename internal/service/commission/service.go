package commission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const (
	breakdownCachePrefix = "commission:breakdown:"
	breakdownCacheTTL    = time.Hour
)

type CommissionServiceImpl struct {
	commissionRepo commission.CommissionRepository
	payPeriodRepo  payperiod.PayPeriodRepository
	employeeRepo   employee.EmployeeRepository
	unitRepo       businessunit.BusinessUnitRepository
	timesheetRepo  timesheet.TimesheetRepository
	jobRepo        job.JobRepository
	redis          *redis.Client

	overtimeMultiplier   decimal.Decimal
	doubleTimeMultiplier decimal.Decimal
}

func NewCommissionService(
	commissionRepo commission.CommissionRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
	employeeRepo employee.EmployeeRepository,
	unitRepo businessunit.BusinessUnitRepository,
	timesheetRepo timesheet.TimesheetRepository,
	jobRepo job.JobRepository,
	redisClient *redis.Client,
	overtimeMultiplier decimal.Decimal,
	doubleTimeMultiplier decimal.Decimal,
) commission.CommissionService {
	return &CommissionServiceImpl{
		commissionRepo:       commissionRepo,
		payPeriodRepo:        payPeriodRepo,
		employeeRepo:         employeeRepo,
		unitRepo:             unitRepo,
		timesheetRepo:        timesheetRepo,
		jobRepo:              jobRepo,
		redis:                redisClient,
		overtimeMultiplier:   overtimeMultiplier,
		doubleTimeMultiplier: doubleTimeMultiplier,
	}
}

// ========== CALCULATION ==========

func (s *CommissionServiceImpl) Calculate(ctx context.Context, req commission.CalculateRequest) (commission.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.CalculationResponse{}, err
	}

	period, err := s.payPeriodRepo.GetByID(ctx, req.PayPeriodID)
	if err != nil {
		return commission.CalculationResponse{}, err
	}

	input, err := s.loadInput(ctx, period)
	if err != nil {
		return commission.CalculationResponse{}, err
	}

	result := Calculate(input)

	if err := s.commissionRepo.ReplaceResults(ctx, result); err != nil {
		return commission.CalculationResponse{}, fmt.Errorf("failed to store calculation results: %w", err)
	}
	s.invalidateBreakdowns(ctx, period.ID, input.Snapshot)

	slog.Info("commission calculation completed",
		"pay_period_id", period.ID,
		"jobs", len(input.Jobs),
		"timesheet_entries", len(input.Entries),
		"line_items", len(result.LineItems),
		"diagnostics", len(result.Diagnostics),
	)
	for _, diag := range result.Diagnostics {
		slog.Warn("calculation diagnostic",
			"pay_period_id", period.ID,
			"code", diag.Code,
			"job_number", diag.JobNumber,
			"subject", diag.Subject,
		)
	}

	// The stored run always covers everyone; employee_ids narrows only this
	// response.
	if len(req.EmployeeIDs) > 0 {
		filter := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			filter[id] = true
		}
		applyEmployeeFilter(&result, filter)
	}

	return mapToCalculationResponse(result), nil
}

// loadInput builds the immutable snapshot one run consumes: the period's
// validated data plus the whole configuration. Everything is read before
// the engine starts, so a run never observes a half-updated roster.
func (s *CommissionServiceImpl) loadInput(ctx context.Context, period payperiod.PayPeriod) (CalculationInput, error) {
	jobs, err := s.jobRepo.GetForPeriod(ctx, period.ID, period.StartDate, period.EndDate)
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to load jobs: %w", err)
	}

	entries, err := s.timesheetRepo.GetForPeriod(ctx, period.ID, period.StartDate, period.EndDate)
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to load timesheet entries: %w", err)
	}

	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to load employees: %w", err)
	}

	overrides, err := s.employeeRepo.GetAllOverrides(ctx)
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to load rate overrides: %w", err)
	}

	units, err := s.unitRepo.List(ctx, businessunit.BusinessUnitFilter{})
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to load business units: %w", err)
	}

	return CalculationInput{
		PayPeriodID:          period.ID,
		Jobs:                 jobs,
		Entries:              entries,
		Snapshot:             NewConfigSnapshot(employees, units, overrides),
		OvertimeMultiplier:   s.overtimeMultiplier,
		DoubleTimeMultiplier: s.doubleTimeMultiplier,
	}, nil
}

// invalidateBreakdowns drops every cached breakdown for the period after a
// recalculation. Cache trouble is never fatal; the next read just goes to
// the database.
func (s *CommissionServiceImpl) invalidateBreakdowns(ctx context.Context, payPeriodID string, snapshot *ConfigSnapshot) {
	if s.redis == nil {
		return
	}
	keys := make([]string, 0, len(snapshot.employeesByName))
	for _, emp := range snapshot.employeesByName {
		keys = append(keys, breakdownCacheKey(payPeriodID, emp.ID))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("failed to invalidate breakdown cache", "pay_period_id", payPeriodID, "error", err)
	}
}

func breakdownCacheKey(payPeriodID, employeeID string) string {
	return fmt.Sprintf("%s%s:%s", breakdownCachePrefix, payPeriodID, employeeID)
}

// ========== BREAKDOWN ==========

func (s *CommissionServiceImpl) GetJobBreakdown(ctx context.Context, employeeID, payPeriodID string) (commission.JobBreakdownResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidUUID(payPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "must be a valid UUID"})
	}
	if len(errs) > 0 {
		return commission.JobBreakdownResponse{}, errs
	}

	cacheKey := breakdownCacheKey(payPeriodID, employeeID)
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var response commission.JobBreakdownResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			slog.Warn("breakdown cache read failed", "key", cacheKey, "error", err)
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return commission.JobBreakdownResponse{}, err
	}
	if _, err := s.payPeriodRepo.GetByID(ctx, payPeriodID); err != nil {
		return commission.JobBreakdownResponse{}, err
	}

	stored, err := s.commissionRepo.CountLineItems(ctx, payPeriodID)
	if err != nil {
		return commission.JobBreakdownResponse{}, err
	}
	if stored == 0 {
		return commission.JobBreakdownResponse{}, commission.ErrNoResultsForPeriod
	}

	lines, err := s.commissionRepo.GetBreakdown(ctx, payPeriodID, employeeID)
	if err != nil {
		return commission.JobBreakdownResponse{}, err
	}

	response := commission.JobBreakdownResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		PayPeriodID:  payPeriodID,
		Lines:        make([]commission.BreakdownLineResponse, 0, len(lines)),
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
		response.Lines = append(response.Lines, mapToBreakdownLineResponse(line))
	}
	response.Total = total.Round(2)

	if s.redis != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, breakdownCacheTTL).Err(); err != nil {
				slog.Warn("breakdown cache write failed", "key", cacheKey, "error", err)
			}
		}
	}

	return response, nil
}

// ========== STORED SUMMARY ==========

func (s *CommissionServiceImpl) GetSummary(ctx context.Context, payPeriodID string) (commission.StoredSummaryResponse, error) {
	if !validator.IsValidUUID(payPeriodID) {
		return commission.StoredSummaryResponse{}, validator.ValidationErrors{
			{Field: "pay_period_id", Message: "must be a valid UUID"},
		}
	}

	if _, err := s.payPeriodRepo.GetByID(ctx, payPeriodID); err != nil {
		return commission.StoredSummaryResponse{}, err
	}

	employeeSummaries, err := s.commissionRepo.GetEmployeeSummaries(ctx, payPeriodID)
	if err != nil {
		return commission.StoredSummaryResponse{}, err
	}
	unitSummaries, err := s.commissionRepo.GetUnitSummaries(ctx, payPeriodID)
	if err != nil {
		return commission.StoredSummaryResponse{}, err
	}
	if len(employeeSummaries) == 0 && len(unitSummaries) == 0 {
		return commission.StoredSummaryResponse{}, commission.ErrNoResultsForPeriod
	}

	response := commission.StoredSummaryResponse{
		PayPeriodID:       payPeriodID,
		EmployeeSummaries: make([]commission.EmployeeSummaryResponse, 0, len(employeeSummaries)),
		UnitSummaries:     make([]commission.UnitSummaryResponse, 0, len(unitSummaries)),
	}
	for _, summary := range employeeSummaries {
		response.EmployeeSummaries = append(response.EmployeeSummaries, mapToEmployeeSummaryResponse(summary))
	}
	for _, summary := range unitSummaries {
		response.UnitSummaries = append(response.UnitSummaries, mapToUnitSummaryResponse(summary))
	}
	return response, nil
}

// ========== RESPONSE MAPPING ==========

// Money leaves the engine at full precision and is rounded to cents here,
// at the presentation edge, never earlier.

func mapToCalculationResponse(result commission.CalculationResult) commission.CalculationResponse {
	response := commission.CalculationResponse{
		PayPeriodID:       result.PayPeriodID,
		LineItems:         make([]commission.LineItemResponse, 0, len(result.LineItems)),
		EmployeeSummaries: make([]commission.EmployeeSummaryResponse, 0, len(result.EmployeeSummaries)),
		UnitSummaries:     make([]commission.UnitSummaryResponse, 0, len(result.UnitSummaries)),
		Diagnostics:       make([]commission.DiagnosticResponse, 0, len(result.Diagnostics)),
		CalculatedAt:      result.CalculatedAt,
	}
	for _, item := range result.LineItems {
		response.LineItems = append(response.LineItems, commission.LineItemResponse{
			EmployeeID:   item.EmployeeID,
			EmployeeName: item.EmployeeName,
			JobID:        item.JobID,
			JobNumber:    item.JobNumber,
			BusinessUnit: item.BusinessUnit,
			Type:         string(item.Type),
			Revenue:      item.Revenue.Round(2),
			Rate:         item.Rate,
			Amount:       item.Amount.Round(2),
		})
	}
	for _, summary := range result.EmployeeSummaries {
		response.EmployeeSummaries = append(response.EmployeeSummaries, mapToEmployeeSummaryResponse(summary))
	}
	for _, summary := range result.UnitSummaries {
		response.UnitSummaries = append(response.UnitSummaries, mapToUnitSummaryResponse(summary))
	}
	for _, diag := range result.Diagnostics {
		response.Diagnostics = append(response.Diagnostics, commission.DiagnosticResponse{
			Code:      diag.Code,
			JobNumber: diag.JobNumber,
			Subject:   diag.Subject,
			Message:   diag.Message,
		})
	}
	return response
}

func mapToEmployeeSummaryResponse(summary commission.EmployeePaySummary) commission.EmployeeSummaryResponse {
	return commission.EmployeeSummaryResponse{
		EmployeeID:         summary.EmployeeID,
		EmployeeName:       summary.EmployeeName,
		RegularHours:       summary.RegularHours,
		OvertimeHours:      summary.OvertimeHours,
		DoubleTimeHours:    summary.DoubleTimeHours,
		TotalHours:         summary.TotalHours,
		HourlyRate:         summary.HourlyRate,
		HourlyPay:          summary.HourlyPay.Round(2),
		LeadGenCommission:  summary.LeadGenCommission.Round(2),
		SalesCommission:    summary.SalesCommission.Round(2),
		WorkDoneCommission: summary.WorkDoneCommission.Round(2),
		TotalCommission:    summary.TotalCommission.Round(2),
		CommissionPlan:     summary.CommissionPlan,
		FinalPay:           summary.FinalPay.Round(2),
	}
}

func mapToUnitSummaryResponse(summary commission.BusinessUnitSummary) commission.UnitSummaryResponse {
	return commission.UnitSummaryResponse{
		BusinessUnit:    summary.BusinessUnit,
		JobCount:        summary.JobCount,
		TotalRevenue:    summary.TotalRevenue.Round(2),
		LeadGenTotal:    summary.LeadGenTotal.Round(2),
		SalesTotal:      summary.SalesTotal.Round(2),
		WorkDoneTotal:   summary.WorkDoneTotal.Round(2),
		TotalCommission: summary.TotalCommission.Round(2),
	}
}

func mapToBreakdownLineResponse(line commission.JobBreakdownLine) commission.BreakdownLineResponse {
	response := commission.BreakdownLineResponse{
		JobID:        line.JobID,
		JobNumber:    line.JobNumber,
		BusinessUnit: line.BusinessUnit,
		Type:         string(line.Type),
		Revenue:      line.Revenue.Round(2),
		Rate:         line.Rate,
		Amount:       line.Amount.Round(2),
	}
	if line.JobDate != nil {
		formatted := line.JobDate.Format("2006-01-02")
		response.JobDate = &formatted
	}
	return response
}
