package commission

import (
	"fmt"
	"testing"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func makeEmployee(id, name string, status employee.EmployeeStatus, plan employee.CommissionPlan, hourlyRate string) employee.Employee {
	return employee.Employee{
		ID:             id,
		Name:           name,
		Status:         status,
		CommissionPlan: plan,
		HourlyRate:     d(hourlyRate),
	}
}

func makeUnit(id, name, leadGen, sales, workDone string) businessunit.BusinessUnit {
	return businessunit.BusinessUnit{
		ID:           id,
		Name:         name,
		Enabled:      true,
		LeadGenRate:  d(leadGen),
		SalesRate:    d(sales),
		WorkDoneRate: d(workDone),
	}
}

func electricalSnapshot(extra ...employee.Employee) *ConfigSnapshot {
	employees := []employee.Employee{
		makeEmployee("emp-1", "Tech One", employee.EmployeeStatusActive, employee.CommissionPlanEfficiencyPay, "40"),
		makeEmployee("emp-2", "Tech Two", employee.EmployeeStatusHelperApprentice, employee.CommissionPlanHourlyPlusCommission, "25"),
		makeEmployee("emp-3", "Tech Three", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "35"),
	}
	employees = append(employees, extra...)
	units := []businessunit.BusinessUnit{
		makeUnit("unit-1", "Electrical", "0", "0", "45"),
	}
	return NewConfigSnapshot(employees, units, nil)
}

func itemsOfType(items []commission.CommissionLineItem, ctype commission.CommissionType) []commission.CommissionLineItem {
	var out []commission.CommissionLineItem
	for _, item := range items {
		if item.Type == ctype {
			out = append(out, item)
		}
	}
	return out
}

func diagnosticCodes(diags []commission.Diagnostic) []string {
	codes := make([]string, 0, len(diags))
	for _, diag := range diags {
		codes = append(codes, diag.Code)
	}
	return codes
}

func TestCalculateWorkDoneExcludesIneligibleTech(t *testing.T) {
	// Job 1001: revenue 4000, work done 45%, one active tech and one
	// helper. The helper leaves both sides of the split: the active tech
	// takes the whole 1800.
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			ID:           "job-1",
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech One", "Tech Two"},
		}},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.LineItems, 1)
	item := result.LineItems[0]
	assert.Equal(t, "emp-1", item.EmployeeID)
	assert.Equal(t, "Tech One", item.EmployeeName)
	assert.Equal(t, "1001", item.JobNumber)
	assert.Equal(t, "Electrical", item.BusinessUnit)
	assert.Equal(t, commission.CommissionTypeWorkDone, item.Type)
	assert.True(t, item.Rate.Equal(d("0.45")), "rate = %s", item.Rate)
	assert.True(t, item.Amount.Equal(d("1800")), "amount = %s", item.Amount)

	assert.Contains(t, diagnosticCodes(result.Diagnostics), commission.DiagnosticIneligibleEmployee)
}

func TestCalculateWorkDoneSplitsEvenly(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech One", "Tech Three"},
		}},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.LineItems, 2)
	assert.Equal(t, "Tech One", result.LineItems[0].EmployeeName)
	assert.Equal(t, "Tech Three", result.LineItems[1].EmployeeName)
	for _, item := range result.LineItems {
		assert.True(t, item.Amount.Equal(d("900")), "amount = %s", item.Amount)
	}
	assert.Empty(t, result.Diagnostics)
}

func TestCalculateWorkDoneSharesSumToCategoryTotal(t *testing.T) {
	// 4000 x 45% = 1800 divides exactly for each of these crew sizes, so
	// the shares must reproduce the category total to the last digit.
	total := d("1800")
	for _, n := range []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12} {
		t.Run(fmt.Sprintf("techs_%d", n), func(t *testing.T) {
			var extra []employee.Employee
			var techs []string
			for i := 0; i < n; i++ {
				id := fmt.Sprintf("crew-%d", i)
				name := fmt.Sprintf("Crew Member %02d", i)
				extra = append(extra, makeEmployee(id, name, employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "30"))
				techs = append(techs, name)
			}

			result := Calculate(CalculationInput{
				PayPeriodID: "period-1",
				Jobs: []job.Job{{
					JobNumber:    "1001",
					BusinessUnit: "Electrical",
					Revenue:      d("4000"),
					Technicians:  techs,
				}},
				Snapshot: electricalSnapshot(extra...),
			})

			require.Len(t, result.LineItems, n)
			sum := decimal.Zero
			for _, item := range result.LineItems {
				sum = sum.Add(item.Amount)
			}
			assert.True(t, sum.Equal(total), "sum of %d shares = %s, want %s", n, sum, total)
		})
	}
}

func TestCalculateWorkDoneDeduplicatesTechnicians(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech One", "tech one", "Tech Three"},
		}},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.LineItems, 2)
	for _, item := range result.LineItems {
		assert.True(t, item.Amount.Equal(d("900")), "amount = %s", item.Amount)
	}
}

func TestCalculateNoEligibleTechnicians(t *testing.T) {
	// A sole helper/apprentice crew earns nothing; the run reports it and
	// moves on. Nothing is redirected to anyone else.
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech Two"},
		}},
		Snapshot: electricalSnapshot(),
	})

	assert.Empty(t, result.LineItems)
	codes := diagnosticCodes(result.Diagnostics)
	assert.Contains(t, codes, commission.DiagnosticIneligibleEmployee)
	assert.Contains(t, codes, commission.DiagnosticNoEligibleTechs)

	require.Len(t, result.UnitSummaries, 1)
	assert.Equal(t, 1, result.UnitSummaries[0].JobCount)
	assert.True(t, result.UnitSummaries[0].TotalRevenue.Equal(d("4000")))
	assert.True(t, result.UnitSummaries[0].TotalCommission.IsZero())
}

func TestCalculateLeadGenAndSales(t *testing.T) {
	employees := []employee.Employee{
		makeEmployee("emp-10", "Dana Reyes", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "0"),
		makeEmployee("emp-11", "Evan Ortiz", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "0"),
	}
	units := []businessunit.BusinessUnit{
		makeUnit("unit-2", "HVAC Service", "5", "10", "0"),
	}
	snapshot := NewConfigSnapshot(employees, units, nil)

	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:       "2001",
			BusinessUnit:    "HVAC Service",
			Revenue:         d("4000"),
			LeadGeneratedBy: strPtr("Dana Reyes"),
			SoldBy:          strPtr("Evan Ortiz"),
		}},
		Snapshot: snapshot,
	})

	require.Len(t, result.LineItems, 2)

	leadItems := itemsOfType(result.LineItems, commission.CommissionTypeLeadGeneration)
	require.Len(t, leadItems, 1)
	assert.Equal(t, "Dana Reyes", leadItems[0].EmployeeName)
	assert.True(t, leadItems[0].Amount.Equal(d("200")), "lead gen = %s", leadItems[0].Amount)

	salesItems := itemsOfType(result.LineItems, commission.CommissionTypeSales)
	require.Len(t, salesItems, 1)
	assert.Equal(t, "Evan Ortiz", salesItems[0].EmployeeName)
	assert.True(t, salesItems[0].Amount.Equal(d("400")), "sales = %s", salesItems[0].Amount)
}

func TestCalculateSameEmployeeEarnsMultipleCategories(t *testing.T) {
	employees := []employee.Employee{
		makeEmployee("emp-20", "Solo Owner", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "0"),
	}
	units := []businessunit.BusinessUnit{
		makeUnit("unit-3", "Plumbing", "5", "10", "45"),
	}
	snapshot := NewConfigSnapshot(employees, units, nil)

	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:       "3001",
			BusinessUnit:    "Plumbing",
			Revenue:         d("1000"),
			LeadGeneratedBy: strPtr("Solo Owner"),
			SoldBy:          strPtr("Solo Owner"),
			Technicians:     []string{"Solo Owner"},
		}},
		Snapshot: snapshot,
	})

	require.Len(t, result.LineItems, 3)
	require.Len(t, result.EmployeeSummaries, 1)
	summary := result.EmployeeSummaries[0]
	assert.True(t, summary.LeadGenCommission.Equal(d("50")))
	assert.True(t, summary.SalesCommission.Equal(d("100")))
	assert.True(t, summary.WorkDoneCommission.Equal(d("450")))
	assert.True(t, summary.TotalCommission.Equal(d("600")))
}

func TestCalculateUnknownEmployeeForfeitsCommission(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:       "1001",
			BusinessUnit:    "Electrical",
			Revenue:         d("4000"),
			LeadGeneratedBy: strPtr("Nobody Known"),
			Technicians:     []string{"Tech One"},
		}},
		Snapshot: electricalSnapshot(),
	})

	// The unknown lead generator produces a diagnostic, not a redirect:
	// the only item is the tech's work done share.
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, commission.CommissionTypeWorkDone, result.LineItems[0].Type)

	codes := diagnosticCodes(result.Diagnostics)
	assert.Contains(t, codes, commission.DiagnosticUnknownEmployee)
}

func TestCalculateUnknownUnitSkipsJob(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "9001",
			BusinessUnit: "Landscaping",
			Revenue:      d("2500"),
			Technicians:  []string{"Tech One"},
		}},
		Snapshot: electricalSnapshot(),
	})

	assert.Empty(t, result.LineItems)
	codes := diagnosticCodes(result.Diagnostics)
	assert.Contains(t, codes, commission.DiagnosticUnitNotConfigured)

	// Revenue still shows up in the unit rollup so the gap is visible.
	require.Len(t, result.UnitSummaries, 1)
	assert.Equal(t, "Landscaping", result.UnitSummaries[0].BusinessUnit)
	assert.True(t, result.UnitSummaries[0].TotalRevenue.Equal(d("2500")))
	assert.True(t, result.UnitSummaries[0].TotalCommission.IsZero())
}

func TestCalculateDisabledUnitSkipsJob(t *testing.T) {
	employees := []employee.Employee{
		makeEmployee("emp-1", "Tech One", employee.EmployeeStatusActive, employee.CommissionPlanEfficiencyPay, "40"),
	}
	disabled := makeUnit("unit-9", "Drain Cleaning", "5", "10", "45")
	disabled.Enabled = false
	snapshot := NewConfigSnapshot(employees, []businessunit.BusinessUnit{disabled}, nil)

	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "7001",
			BusinessUnit: "Drain Cleaning",
			Revenue:      d("1000"),
			Technicians:  []string{"Tech One"},
		}},
		Snapshot: snapshot,
	})

	assert.Empty(t, result.LineItems)
	assert.Contains(t, diagnosticCodes(result.Diagnostics), commission.DiagnosticUnitDisabled)
	require.Len(t, result.UnitSummaries, 1)
	assert.True(t, result.UnitSummaries[0].TotalRevenue.Equal(d("1000")))
}

func TestCalculateRateOverrideWinsFieldByField(t *testing.T) {
	employees := []employee.Employee{
		makeEmployee("emp-1", "Tech One", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "40"),
	}
	units := []businessunit.BusinessUnit{
		makeUnit("unit-1", "Electrical", "5", "0", "45"),
	}
	override := d("50")
	overrides := []employee.RateOverride{{
		EmployeeID:     "emp-1",
		BusinessUnitID: "unit-1",
		WorkDoneRate:   &override,
		// LeadGenRate nil: the unit default still applies.
	}}
	snapshot := NewConfigSnapshot(employees, units, overrides)

	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:       "1001",
			BusinessUnit:    "Electrical",
			Revenue:         d("1000"),
			LeadGeneratedBy: strPtr("Tech One"),
			Technicians:     []string{"Tech One"},
		}},
		Snapshot: snapshot,
	})

	workItems := itemsOfType(result.LineItems, commission.CommissionTypeWorkDone)
	require.Len(t, workItems, 1)
	assert.True(t, workItems[0].Amount.Equal(d("500")), "work done = %s", workItems[0].Amount)

	leadItems := itemsOfType(result.LineItems, commission.CommissionTypeLeadGeneration)
	require.Len(t, leadItems, 1)
	assert.True(t, leadItems[0].Amount.Equal(d("50")), "lead gen = %s", leadItems[0].Amount)
}

func TestCalculateEfficiencyPayTakesMax(t *testing.T) {
	// Hourly 2000 vs commission 1800: Efficiency Pay pays 2000, never the
	// 3800 sum.
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech One"},
		}},
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Tech One", RegularHours: d("50")},
		},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.EmployeeSummaries, 1)
	summary := result.EmployeeSummaries[0]
	assert.True(t, summary.HourlyPay.Equal(d("2000")), "hourly = %s", summary.HourlyPay)
	assert.True(t, summary.TotalCommission.Equal(d("1800")), "commission = %s", summary.TotalCommission)
	assert.True(t, summary.FinalPay.Equal(d("2000")), "final = %s", summary.FinalPay)
}

func TestCalculateEfficiencyPayTakesCommissionWhenLarger(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("10000"),
			Technicians:  []string{"Tech One"},
		}},
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Tech One", RegularHours: d("50")},
		},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.EmployeeSummaries, 1)
	summary := result.EmployeeSummaries[0]
	assert.True(t, summary.TotalCommission.Equal(d("4500")))
	assert.True(t, summary.FinalPay.Equal(d("4500")), "final = %s", summary.FinalPay)
}

func TestCalculateHourlyPlusCommissionTakesSum(t *testing.T) {
	employees := []employee.Employee{
		makeEmployee("emp-30", "Sum Earner", employee.EmployeeStatusActive, employee.CommissionPlanHourlyPlusCommission, "40"),
	}
	units := []businessunit.BusinessUnit{
		makeUnit("unit-1", "Electrical", "0", "0", "45"),
	}
	snapshot := NewConfigSnapshot(employees, units, nil)

	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Sum Earner"},
		}},
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Sum Earner", RegularHours: d("50")},
		},
		Snapshot: snapshot,
	})

	require.Len(t, result.EmployeeSummaries, 1)
	assert.True(t, result.EmployeeSummaries[0].FinalPay.Equal(d("3800")), "final = %s", result.EmployeeSummaries[0].FinalPay)
}

func TestCalculateHourlyPayWeightsOvertime(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Tech One", RegularHours: d("40"), OvertimeHours: d("10"), DoubleTimeHours: d("5")},
		},
		Snapshot: electricalSnapshot(),
	})

	require.Len(t, result.EmployeeSummaries, 1)
	summary := result.EmployeeSummaries[0]
	assert.True(t, summary.TotalHours.Equal(d("55")))
	// 40 + 10x1.5 + 5x2 = 65 weighted hours at 40/h.
	assert.True(t, summary.HourlyPay.Equal(d("2600")), "hourly = %s", summary.HourlyPay)
}

func TestCalculateCustomMultipliers(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Tech One", RegularHours: d("40"), OvertimeHours: d("10"), DoubleTimeHours: d("5")},
		},
		Snapshot:             electricalSnapshot(),
		OvertimeMultiplier:   d("2"),
		DoubleTimeMultiplier: d("3"),
	})

	require.Len(t, result.EmployeeSummaries, 1)
	// 40 + 10x2 + 5x3 = 75 weighted hours at 40/h.
	assert.True(t, result.EmployeeSummaries[0].HourlyPay.Equal(d("3000")))
}

func TestCalculateExcludedFromPayrollGetsNoSummary(t *testing.T) {
	office := makeEmployee("emp-40", "Office Admin", employee.EmployeeStatusExcludedFromPayroll, employee.CommissionPlanHourlyPlusCommission, "30")
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Office Admin", RegularHours: d("40")},
			{EmployeeName: "Tech Two", RegularHours: d("40")},
		},
		Snapshot: electricalSnapshot(office),
	})

	// The excluded employee vanishes from payroll; the helper still gets
	// an hourly-only summary.
	require.Len(t, result.EmployeeSummaries, 1)
	summary := result.EmployeeSummaries[0]
	assert.Equal(t, "Tech Two", summary.EmployeeName)
	assert.True(t, summary.TotalCommission.IsZero())
	assert.True(t, summary.HourlyPay.Equal(d("1000")))
	assert.True(t, summary.FinalPay.Equal(d("1000")))
}

func TestCalculateUnmatchedTimesheetNameReportedOnce(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Ghost Worker", RegularHours: d("8")},
			{EmployeeName: "ghost worker", RegularHours: d("8")},
		},
		Snapshot: electricalSnapshot(),
	})

	assert.Empty(t, result.EmployeeSummaries)
	unmatched := 0
	for _, diag := range result.Diagnostics {
		if diag.Code == commission.DiagnosticUnmatchedTimesheet {
			unmatched++
		}
	}
	assert.Equal(t, 1, unmatched)
}

func TestApplyEmployeeFilterNarrowsOutputNotAmounts(t *testing.T) {
	result := Calculate(CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{{
			JobNumber:    "1001",
			BusinessUnit: "Electrical",
			Revenue:      d("4000"),
			Technicians:  []string{"Tech One", "Tech Three"},
		}},
		Snapshot: electricalSnapshot(),
	})

	applyEmployeeFilter(&result, map[string]bool{"emp-1": true})

	// Tech Three is hidden but still in the denominator: Tech One's share
	// stays 900, not 1800.
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "emp-1", result.LineItems[0].EmployeeID)
	assert.True(t, result.LineItems[0].Amount.Equal(d("900")), "amount = %s", result.LineItems[0].Amount)

	require.Len(t, result.EmployeeSummaries, 1)
	assert.Equal(t, "emp-1", result.EmployeeSummaries[0].EmployeeID)

	// Unit rollups keep the whole picture.
	require.Len(t, result.UnitSummaries, 1)
	assert.True(t, result.UnitSummaries[0].WorkDoneTotal.Equal(d("1800")))
}

func TestCalculateIdempotent(t *testing.T) {
	input := CalculationInput{
		PayPeriodID: "period-1",
		Jobs: []job.Job{
			{
				JobNumber:       "1001",
				BusinessUnit:    "Electrical",
				Revenue:         d("4000"),
				LeadGeneratedBy: strPtr("Tech Three"),
				Technicians:     []string{"Tech One", "Tech Three"},
			},
			{
				JobNumber:    "1002",
				BusinessUnit: "Electrical",
				Revenue:      d("1250.75"),
				Technicians:  []string{"Tech One"},
			},
		},
		Entries: []timesheet.TimesheetEntry{
			{EmployeeName: "Tech One", RegularHours: d("40"), OvertimeHours: d("3")},
			{EmployeeName: "Tech Three", RegularHours: d("38")},
		},
		Snapshot: electricalSnapshot(),
	}

	first := Calculate(input)
	second := Calculate(input)

	assert.Equal(t, first.LineItems, second.LineItems)
	assert.Equal(t, first.EmployeeSummaries, second.EmployeeSummaries)
	assert.Equal(t, first.UnitSummaries, second.UnitSummaries)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}
