package commission

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

var (
	defaultOvertimeMultiplier   = decimal.NewFromFloat(1.5)
	defaultDoubleTimeMultiplier = decimal.NewFromInt(2)
)

// CalculationInput is everything one run consumes. Jobs and entries are the
// validated period data; Snapshot is the configuration it resolves against.
// Zero multipliers fall back to 1.5x overtime and 2x double time.
type CalculationInput struct {
	PayPeriodID          string
	Jobs                 []job.Job
	Entries              []timesheet.TimesheetEntry
	Snapshot             *ConfigSnapshot
	OvertimeMultiplier   decimal.Decimal
	DoubleTimeMultiplier decimal.Decimal
}

// employeeTotals accumulates one employee's hours and commissions across
// the whole run.
type employeeTotals struct {
	emp        employee.Employee
	regular    decimal.Decimal
	overtime   decimal.Decimal
	doubleTime decimal.Decimal
	leadGen    decimal.Decimal
	sales      decimal.Decimal
	workDone   decimal.Decimal
	referenced bool
}

// unitTotals accumulates one business unit's jobs and commissions. Units
// are keyed by folded name so dataset spellings collapse onto the
// configured unit; unknown units still get a revenue rollup.
type unitTotals struct {
	name     string
	jobCount int
	revenue  decimal.Decimal
	leadGen  decimal.Decimal
	sales    decimal.Decimal
	workDone decimal.Decimal
}

// Calculate runs one deterministic pass over the period data: three
// commission categories per job, then per-employee aggregation with the
// hourly reconciliation, then unit rollups. Bad references are skipped and
// reported, never fatal. Identical inputs produce identical outputs.
func Calculate(input CalculationInput) commission.CalculationResult {
	otMult := input.OvertimeMultiplier
	if otMult.IsZero() {
		otMult = defaultOvertimeMultiplier
	}
	dtMult := input.DoubleTimeMultiplier
	if dtMult.IsZero() {
		dtMult = defaultDoubleTimeMultiplier
	}

	result := commission.CalculationResult{
		PayPeriodID:  input.PayPeriodID,
		CalculatedAt: time.Now(),
	}

	totals := make(map[string]*employeeTotals)
	units := make(map[string]*unitTotals)

	totalsFor := func(emp employee.Employee) *employeeTotals {
		t, ok := totals[emp.ID]
		if !ok {
			t = &employeeTotals{emp: emp}
			totals[emp.ID] = t
		}
		return t
	}

	// ========== PER-JOB COMMISSIONS ==========

	for _, j := range input.Jobs {
		unit, unitKnown := input.Snapshot.LookupUnit(j.BusinessUnit)

		unitName := strings.TrimSpace(j.BusinessUnit)
		if unitKnown {
			unitName = unit.Name
		}
		acc, ok := units[foldName(unitName)]
		if !ok {
			acc = &unitTotals{name: unitName}
			units[foldName(unitName)] = acc
		}
		acc.jobCount++
		acc.revenue = acc.revenue.Add(j.Revenue)

		if !unitKnown {
			result.Diagnostics = append(result.Diagnostics, commission.Diagnostic{
				Code:      commission.DiagnosticUnitNotConfigured,
				JobNumber: j.JobNumber,
				Subject:   unitName,
				Message:   fmt.Sprintf("business unit %q has no commission configuration, job skipped", unitName),
			})
			continue
		}
		if !unit.Enabled {
			result.Diagnostics = append(result.Diagnostics, commission.Diagnostic{
				Code:      commission.DiagnosticUnitDisabled,
				JobNumber: j.JobNumber,
				Subject:   unit.Name,
				Message:   fmt.Sprintf("business unit %q is disabled, job skipped", unit.Name),
			})
			continue
		}

		emit := func(emp employee.Employee, ctype commission.CommissionType, rate, amount decimal.Decimal) {
			result.LineItems = append(result.LineItems, commission.CommissionLineItem{
				PayPeriodID:  input.PayPeriodID,
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				JobID:        j.ID,
				JobNumber:    j.JobNumber,
				BusinessUnit: unit.Name,
				Type:         ctype,
				Revenue:      j.Revenue,
				Rate:         rate,
				Amount:       amount,
			})
			t := totalsFor(emp)
			t.referenced = true
			switch ctype {
			case commission.CommissionTypeLeadGeneration:
				t.leadGen = t.leadGen.Add(amount)
				acc.leadGen = acc.leadGen.Add(amount)
			case commission.CommissionTypeSales:
				t.sales = t.sales.Add(amount)
				acc.sales = acc.sales.Add(amount)
			case commission.CommissionTypeWorkDone:
				t.workDone = t.workDone.Add(amount)
				acc.workDone = acc.workDone.Add(amount)
			}
		}

		// Lead Generation: the named generator earns revenue x rate. An
		// unknown or ineligible name forfeits the commission; it is never
		// redirected to someone else.
		if name := optionalName(j.LeadGeneratedBy); name != "" {
			if emp, found, diag := resolveRole(input.Snapshot, name, j.JobNumber, "lead generator"); found {
				rates := input.Snapshot.ResolveRates(emp.ID, unit)
				if rates.LeadGen.IsPositive() {
					emit(emp, commission.CommissionTypeLeadGeneration, rates.LeadGen, j.Revenue.Mul(rates.LeadGen))
				}
			} else if diag != nil {
				result.Diagnostics = append(result.Diagnostics, *diag)
			}
		}

		// Sales: same shape, keyed off the salesperson.
		if name := optionalName(j.SoldBy); name != "" {
			if emp, found, diag := resolveRole(input.Snapshot, name, j.JobNumber, "salesperson"); found {
				rates := input.Snapshot.ResolveRates(emp.ID, unit)
				if rates.Sales.IsPositive() {
					emit(emp, commission.CommissionTypeSales, rates.Sales, j.Revenue.Mul(rates.Sales))
				}
			} else if diag != nil {
				result.Diagnostics = append(result.Diagnostics, *diag)
			}
		}

		// Work Done: the job's revenue earns each eligible technician an
		// equal share of the amount. Ineligible technicians leave both the
		// numerator and the denominator, so the remaining shares grow; a
		// job with no eligible technicians pays nothing at all.
		if len(j.Technicians) > 0 {
			eligible := make([]employee.Employee, 0, len(j.Technicians))
			seen := make(map[string]bool, len(j.Technicians))
			for _, techName := range j.Technicians {
				emp, found, diag := resolveRole(input.Snapshot, techName, j.JobNumber, "technician")
				if !found {
					if diag != nil {
						result.Diagnostics = append(result.Diagnostics, *diag)
					}
					continue
				}
				if seen[emp.ID] {
					continue
				}
				seen[emp.ID] = true
				eligible = append(eligible, emp)
			}

			if len(eligible) == 0 {
				result.Diagnostics = append(result.Diagnostics, commission.Diagnostic{
					Code:      commission.DiagnosticNoEligibleTechs,
					JobNumber: j.JobNumber,
					Subject:   unit.Name,
					Message:   "no eligible technicians assigned, work done commission not paid",
				})
			} else {
				share := decimal.NewFromInt(int64(len(eligible)))
				for _, emp := range eligible {
					rates := input.Snapshot.ResolveRates(emp.ID, unit)
					if rates.WorkDone.IsPositive() {
						emit(emp, commission.CommissionTypeWorkDone, rates.WorkDone, j.Revenue.Mul(rates.WorkDone).Div(share))
					}
				}
			}
		}
	}

	// ========== TIMESHEET HOURS ==========

	reportedUnmatched := make(map[string]bool)
	for _, entry := range input.Entries {
		emp, found := input.Snapshot.LookupEmployee(entry.EmployeeName)
		if !found {
			key := foldName(entry.EmployeeName)
			if !reportedUnmatched[key] {
				reportedUnmatched[key] = true
				result.Diagnostics = append(result.Diagnostics, commission.Diagnostic{
					Code:    commission.DiagnosticUnmatchedTimesheet,
					Subject: strings.TrimSpace(entry.EmployeeName),
					Message: fmt.Sprintf("timesheet name %q matches no employee, hours not paid", strings.TrimSpace(entry.EmployeeName)),
				})
			}
			continue
		}
		t := totalsFor(emp)
		t.referenced = true
		t.regular = t.regular.Add(entry.RegularHours)
		t.overtime = t.overtime.Add(entry.OvertimeHours)
		t.doubleTime = t.doubleTime.Add(entry.DoubleTimeHours)
	}

	// ========== PER-EMPLOYEE SUMMARIES ==========

	for _, t := range totals {
		if !t.referenced || t.emp.Status == employee.EmployeeStatusExcludedFromPayroll {
			continue
		}

		weighted := t.regular.
			Add(t.overtime.Mul(otMult)).
			Add(t.doubleTime.Mul(dtMult))
		hourlyPay := t.emp.HourlyRate.Mul(weighted)
		totalCommission := t.leadGen.Add(t.sales).Add(t.workDone)

		finalPay := hourlyPay.Add(totalCommission)
		if t.emp.CommissionPlan == employee.CommissionPlanEfficiencyPay {
			// Efficiency Pay pays the better of the two, never both.
			finalPay = decimal.Max(hourlyPay, totalCommission)
		}

		result.EmployeeSummaries = append(result.EmployeeSummaries, commission.EmployeePaySummary{
			PayPeriodID:        input.PayPeriodID,
			EmployeeID:         t.emp.ID,
			EmployeeName:       t.emp.Name,
			RegularHours:       t.regular,
			OvertimeHours:      t.overtime,
			DoubleTimeHours:    t.doubleTime,
			TotalHours:         t.regular.Add(t.overtime).Add(t.doubleTime),
			HourlyRate:         t.emp.HourlyRate,
			HourlyPay:          hourlyPay,
			LeadGenCommission:  t.leadGen,
			SalesCommission:    t.sales,
			WorkDoneCommission: t.workDone,
			TotalCommission:    totalCommission,
			CommissionPlan:     string(t.emp.CommissionPlan),
			FinalPay:           finalPay,
		})
	}
	sort.Slice(result.EmployeeSummaries, func(i, k int) bool {
		a, b := result.EmployeeSummaries[i], result.EmployeeSummaries[k]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.EmployeeID < b.EmployeeID
	})

	// ========== PER-UNIT SUMMARIES ==========

	for _, acc := range units {
		result.UnitSummaries = append(result.UnitSummaries, commission.BusinessUnitSummary{
			PayPeriodID:     input.PayPeriodID,
			BusinessUnit:    acc.name,
			JobCount:        acc.jobCount,
			TotalRevenue:    acc.revenue,
			LeadGenTotal:    acc.leadGen,
			SalesTotal:      acc.sales,
			WorkDoneTotal:   acc.workDone,
			TotalCommission: acc.leadGen.Add(acc.sales).Add(acc.workDone),
		})
	}
	sort.Slice(result.UnitSummaries, func(i, k int) bool {
		return result.UnitSummaries[i].BusinessUnit < result.UnitSummaries[k].BusinessUnit
	})

	return result
}

// resolveRole looks up one named job role. found=false with a non-nil
// diagnostic means the name was unknown or the employee is not commission
// eligible; the commission is simply not paid.
func resolveRole(snapshot *ConfigSnapshot, name, jobNumber, role string) (employee.Employee, bool, *commission.Diagnostic) {
	emp, ok := snapshot.LookupEmployee(name)
	if !ok {
		return employee.Employee{}, false, &commission.Diagnostic{
			Code:      commission.DiagnosticUnknownEmployee,
			JobNumber: jobNumber,
			Subject:   strings.TrimSpace(name),
			Message:   fmt.Sprintf("%s %q matches no employee, commission not paid", role, strings.TrimSpace(name)),
		}
	}
	if !emp.IsCommissionEligible() {
		return employee.Employee{}, false, &commission.Diagnostic{
			Code:      commission.DiagnosticIneligibleEmployee,
			JobNumber: jobNumber,
			Subject:   emp.Name,
			Message:   fmt.Sprintf("%s %q has status %q and is not commission eligible", role, emp.Name, emp.Status),
		}
	}
	return emp, true, nil
}

func optionalName(name *string) string {
	if name == nil {
		return ""
	}
	return strings.TrimSpace(*name)
}

// applyEmployeeFilter narrows line items and employee summaries to the
// requested employees. It runs on a finished result, after all amounts are
// final and stored, so filtering never changes what anyone is paid and never
// touches the stored run. Unit rollups keep the whole picture.
func applyEmployeeFilter(result *commission.CalculationResult, filter map[string]bool) {
	if len(filter) == 0 {
		return
	}

	items := result.LineItems[:0]
	for _, item := range result.LineItems {
		if filter[item.EmployeeID] {
			items = append(items, item)
		}
	}
	result.LineItems = items

	summaries := result.EmployeeSummaries[:0]
	for _, s := range result.EmployeeSummaries {
		if filter[s.EmployeeID] {
			summaries = append(summaries, s)
		}
	}
	result.EmployeeSummaries = summaries
}
