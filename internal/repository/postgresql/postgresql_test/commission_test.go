package postgresql_test

import (
	"context"
	"testing"

	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedTestJob(t *testing.T, ctx context.Context, payPeriodID string) job.Job {
	t.Helper()
	uploadRepo := postgresql.NewUploadRepository(testDB.DB)
	jobRepo := postgresql.NewJobRepository(testDB.DB)

	batch, err := uploadRepo.CreateBatch(ctx, dataset.UploadBatch{
		Kind:         dataset.DatasetKindRevenue,
		OriginalName: "revenue.csv",
		StoredPath:   "uploads/revenue/test.csv",
		PayPeriodID:  &payPeriodID,
		TotalRows:    1,
		ValidRows:    1,
		QualityScore: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	jobDate := day(2025, 1, 10)
	n, err := jobRepo.BulkInsert(ctx, []job.Job{{
		UploadID:     &batch.ID,
		JobNumber:    "J-1001",
		JobDate:      &jobDate,
		BusinessUnit: "Electrical",
		Revenue:      decimal.NewFromInt(4000),
		Technicians:  []string{"Tech One"},
	}})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	jobs, err := jobRepo.GetForPeriod(ctx, payPeriodID, day(2025, 1, 1), day(2025, 1, 15))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	return jobs[0]
}

func TestCommissionRepository_ReplaceResults_RoundTrip(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewCommissionRepository(testDB.DB)

	periods := createTestPeriods(t, ctx)
	emp := createTestEmployee(t, ctx, "Tech One", employee.EmployeeStatusActive)
	stored := storedTestJob(t, ctx, periods[0].ID)

	result := commission.CalculationResult{
		PayPeriodID: periods[0].ID,
		LineItems: []commission.CommissionLineItem{{
			PayPeriodID:  periods[0].ID,
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			JobID:        stored.ID,
			JobNumber:    "J-1001",
			BusinessUnit: "Electrical",
			Type:         commission.CommissionTypeWorkDone,
			Revenue:      decimal.NewFromInt(4000),
			Rate:         decimal.NewFromFloat(0.45),
			Amount:       decimal.NewFromInt(1800),
		}},
		EmployeeSummaries: []commission.EmployeePaySummary{{
			PayPeriodID:        periods[0].ID,
			EmployeeID:         emp.ID,
			EmployeeName:       emp.Name,
			RegularHours:       decimal.NewFromInt(80),
			TotalHours:         decimal.NewFromInt(80),
			HourlyRate:         decimal.NewFromInt(30),
			HourlyPay:          decimal.NewFromInt(2400),
			WorkDoneCommission: decimal.NewFromInt(1800),
			TotalCommission:    decimal.NewFromInt(1800),
			CommissionPlan:     string(employee.CommissionPlanHourlyPlusCommission),
			FinalPay:           decimal.NewFromInt(4200),
		}},
		UnitSummaries: []commission.BusinessUnitSummary{{
			PayPeriodID:     periods[0].ID,
			BusinessUnit:    "Electrical",
			JobCount:        1,
			TotalRevenue:    decimal.NewFromInt(4000),
			WorkDoneTotal:   decimal.NewFromInt(1800),
			TotalCommission: decimal.NewFromInt(1800),
		}},
	}

	require.NoError(t, repo.ReplaceResults(ctx, result))

	items, err := repo.GetLineItems(ctx, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, commission.CommissionTypeWorkDone, items[0].Type)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(1800)))
	assert.Equal(t, stored.ID, items[0].JobID)

	byEmployee, err := repo.GetLineItemsByEmployee(ctx, periods[0].ID, emp.ID)
	require.NoError(t, err)
	require.Len(t, byEmployee, 1)

	summaries, err := repo.GetEmployeeSummaries(ctx, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].FinalPay.Equal(decimal.NewFromInt(4200)))

	units, err := repo.GetUnitSummaries(ctx, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, 1, units[0].JobCount)

	count, err := repo.CountLineItems(ctx, periods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Periods with stored results now block schedule regeneration
	payPeriodRepo := postgresql.NewPayPeriodRepository(testDB.DB)
	withResults, err := payPeriodRepo.CountWithResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), withResults)
}

func TestCommissionRepository_ReplaceResults_ReplacesPreviousRun(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewCommissionRepository(testDB.DB)

	periods := createTestPeriods(t, ctx)
	emp := createTestEmployee(t, ctx, "Tech One", employee.EmployeeStatusActive)
	stored := storedTestJob(t, ctx, periods[0].ID)

	lineItem := commission.CommissionLineItem{
		PayPeriodID:  periods[0].ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		JobID:        stored.ID,
		JobNumber:    "J-1001",
		BusinessUnit: "Electrical",
		Type:         commission.CommissionTypeSales,
		Revenue:      decimal.NewFromInt(4000),
		Rate:         decimal.NewFromFloat(0.03),
		Amount:       decimal.NewFromInt(120),
	}

	require.NoError(t, repo.ReplaceResults(ctx, commission.CalculationResult{
		PayPeriodID: periods[0].ID,
		LineItems:   []commission.CommissionLineItem{lineItem, lineItem},
	}))

	lineItem.Amount = decimal.NewFromInt(200)
	require.NoError(t, repo.ReplaceResults(ctx, commission.CalculationResult{
		PayPeriodID: periods[0].ID,
		LineItems:   []commission.CommissionLineItem{lineItem},
	}))

	// The rerun replaced the two old rows rather than piling on
	items, err := repo.GetLineItems(ctx, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(200)))
}

func TestCommissionRepository_GetBreakdown(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewCommissionRepository(testDB.DB)

	periods := createTestPeriods(t, ctx)
	emp := createTestEmployee(t, ctx, "Tech One", employee.EmployeeStatusActive)
	stored := storedTestJob(t, ctx, periods[0].ID)

	require.NoError(t, repo.ReplaceResults(ctx, commission.CalculationResult{
		PayPeriodID: periods[0].ID,
		LineItems: []commission.CommissionLineItem{{
			PayPeriodID:  periods[0].ID,
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			JobID:        stored.ID,
			JobNumber:    "J-1001",
			BusinessUnit: "Electrical",
			Type:         commission.CommissionTypeWorkDone,
			Revenue:      decimal.NewFromInt(4000),
			Rate:         decimal.NewFromFloat(0.45),
			Amount:       decimal.NewFromInt(1800),
		}},
	}))

	lines, err := repo.GetBreakdown(ctx, periods[0].ID, emp.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "J-1001", lines[0].JobNumber)
	// The job date comes back through the join with the stored job
	require.NotNil(t, lines[0].JobDate)
	assert.True(t, lines[0].JobDate.Equal(day(2025, 1, 10)))
	assert.True(t, lines[0].Rate.Equal(decimal.NewFromFloat(0.45)))

	// No rows for an employee with nothing in the period
	other := createTestEmployee(t, ctx, "Tech Two", employee.EmployeeStatusActive)
	lines, err = repo.GetBreakdown(ctx, periods[0].ID, other.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
