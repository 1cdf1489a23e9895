package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type commissionRepositoryImpl struct {
	db *database.DB
}

func NewCommissionRepository(db *database.DB) commission.CommissionRepository {
	return &commissionRepositoryImpl{db: db}
}

// ========== RESULT STORAGE ==========

// ReplaceResults implements commission.CommissionRepository. The previous
// run's rows are deleted and the new ones inserted in a single transaction,
// so recalculation either fully replaces a period's results or leaves the
// stored run untouched.
func (c *commissionRepositoryImpl) ReplaceResults(ctx context.Context, result commission.CalculationResult) error {
	lineItemQuery := `
		INSERT INTO commission_line_items (pay_period_id, employee_id, employee_name, job_id, job_number, business_unit, type, revenue, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	employeeSummaryQuery := `
		INSERT INTO employee_pay_summaries (
			pay_period_id, employee_id, employee_name,
			regular_hours, overtime_hours, double_time_hours, total_hours,
			hourly_rate, hourly_pay,
			lead_gen_commission, sales_commission, work_done_commission, total_commission,
			commission_plan, final_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	unitSummaryQuery := `
		INSERT INTO business_unit_summaries (pay_period_id, business_unit, job_count, total_revenue, lead_gen_total, sales_total, work_done_total, total_commission)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	return WithTransaction(ctx, c.db, func(tx pgx.Tx) error {
		for _, table := range []string{"commission_line_items", "employee_pay_summaries", "business_unit_summaries"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE pay_period_id = $1", table), result.PayPeriodID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, item := range result.LineItems {
			_, err := tx.Exec(ctx, lineItemQuery,
				item.PayPeriodID, item.EmployeeID, item.EmployeeName,
				item.JobID, item.JobNumber, item.BusinessUnit, item.Type,
				item.Revenue, item.Rate, item.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert line item for job %q: %w", item.JobNumber, err)
			}
		}

		for _, summary := range result.EmployeeSummaries {
			_, err := tx.Exec(ctx, employeeSummaryQuery,
				summary.PayPeriodID, summary.EmployeeID, summary.EmployeeName,
				summary.RegularHours, summary.OvertimeHours, summary.DoubleTimeHours, summary.TotalHours,
				summary.HourlyRate, summary.HourlyPay,
				summary.LeadGenCommission, summary.SalesCommission, summary.WorkDoneCommission, summary.TotalCommission,
				summary.CommissionPlan, summary.FinalPay,
			)
			if err != nil {
				return fmt.Errorf("failed to insert pay summary for %q: %w", summary.EmployeeName, err)
			}
		}

		for _, summary := range result.UnitSummaries {
			_, err := tx.Exec(ctx, unitSummaryQuery,
				summary.PayPeriodID, summary.BusinessUnit, summary.JobCount,
				summary.TotalRevenue, summary.LeadGenTotal, summary.SalesTotal,
				summary.WorkDoneTotal, summary.TotalCommission,
			)
			if err != nil {
				return fmt.Errorf("failed to insert unit summary for %q: %w", summary.BusinessUnit, err)
			}
		}

		return nil
	})
}

// ========== RESULT QUERIES ==========

// GetLineItems implements commission.CommissionRepository.
func (c *commissionRepositoryImpl) GetLineItems(ctx context.Context, payPeriodID string) ([]commission.CommissionLineItem, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, pay_period_id, employee_id, employee_name, job_id, job_number, business_unit, type, revenue, rate, amount, created_at
		FROM commission_line_items
		WHERE pay_period_id = $1
		ORDER BY job_number ASC, employee_name ASC, type ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	return scanLineItems(rows)
}

// GetLineItemsByEmployee implements commission.CommissionRepository.
func (c *commissionRepositoryImpl) GetLineItemsByEmployee(ctx context.Context, payPeriodID, employeeID string) ([]commission.CommissionLineItem, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, pay_period_id, employee_id, employee_name, job_id, job_number, business_unit, type, revenue, rate, amount, created_at
		FROM commission_line_items
		WHERE pay_period_id = $1 AND employee_id = $2
		ORDER BY job_number ASC, type ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items by employee: %w", err)
	}
	defer rows.Close()

	return scanLineItems(rows)
}

// GetEmployeeSummaries implements commission.CommissionRepository.
func (c *commissionRepositoryImpl) GetEmployeeSummaries(ctx context.Context, payPeriodID string) ([]commission.EmployeePaySummary, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, pay_period_id, employee_id, employee_name,
			regular_hours, overtime_hours, double_time_hours, total_hours,
			hourly_rate, hourly_pay,
			lead_gen_commission, sales_commission, work_done_commission, total_commission,
			commission_plan, final_pay, created_at
		FROM employee_pay_summaries
		WHERE pay_period_id = $1
		ORDER BY employee_name ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee pay summaries: %w", err)
	}
	defer rows.Close()

	var summaries []commission.EmployeePaySummary
	for rows.Next() {
		var summary commission.EmployeePaySummary
		err := rows.Scan(
			&summary.ID, &summary.PayPeriodID, &summary.EmployeeID, &summary.EmployeeName,
			&summary.RegularHours, &summary.OvertimeHours, &summary.DoubleTimeHours, &summary.TotalHours,
			&summary.HourlyRate, &summary.HourlyPay,
			&summary.LeadGenCommission, &summary.SalesCommission, &summary.WorkDoneCommission, &summary.TotalCommission,
			&summary.CommissionPlan, &summary.FinalPay, &summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee pay summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetUnitSummaries implements commission.CommissionRepository.
func (c *commissionRepositoryImpl) GetUnitSummaries(ctx context.Context, payPeriodID string) ([]commission.BusinessUnitSummary, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, pay_period_id, business_unit, job_count, total_revenue, lead_gen_total, sales_total, work_done_total, total_commission, created_at
		FROM business_unit_summaries
		WHERE pay_period_id = $1
		ORDER BY business_unit ASC
	`

	rows, err := q.Query(ctx, query, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit summaries: %w", err)
	}
	defer rows.Close()

	var summaries []commission.BusinessUnitSummary
	for rows.Next() {
		var summary commission.BusinessUnitSummary
		err := rows.Scan(
			&summary.ID, &summary.PayPeriodID, &summary.BusinessUnit, &summary.JobCount,
			&summary.TotalRevenue, &summary.LeadGenTotal, &summary.SalesTotal,
			&summary.WorkDoneTotal, &summary.TotalCommission, &summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetBreakdown implements commission.CommissionRepository. Line items are
// self-contained snapshots; the join only recovers the job date for jobs
// still present in the ledger.
func (c *commissionRepositoryImpl) GetBreakdown(ctx context.Context, payPeriodID, employeeID string) ([]commission.JobBreakdownLine, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT i.job_id, i.job_number, i.business_unit, j.job_date, i.type, i.revenue, i.rate, i.amount
		FROM commission_line_items i
		LEFT JOIN jobs j ON i.job_id = j.id
		WHERE i.pay_period_id = $1 AND i.employee_id = $2
		ORDER BY i.job_number ASC, i.type ASC, i.amount DESC
	`

	rows, err := q.Query(ctx, query, payPeriodID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job breakdown: %w", err)
	}
	defer rows.Close()

	var lines []commission.JobBreakdownLine
	for rows.Next() {
		var line commission.JobBreakdownLine
		err := rows.Scan(
			&line.JobID, &line.JobNumber, &line.BusinessUnit, &line.JobDate,
			&line.Type, &line.Revenue, &line.Rate, &line.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan breakdown line: %w", err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// CountLineItems implements commission.CommissionRepository.
func (c *commissionRepositoryImpl) CountLineItems(ctx context.Context, payPeriodID string) (int64, error) {
	q := GetQuerier(ctx, c.db)

	var total int64
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM commission_line_items WHERE pay_period_id = $1", payPeriodID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count line items: %w", err)
	}
	return total, nil
}

func scanLineItems(rows pgx.Rows) ([]commission.CommissionLineItem, error) {
	var items []commission.CommissionLineItem
	for rows.Next() {
		var item commission.CommissionLineItem
		err := rows.Scan(
			&item.ID, &item.PayPeriodID, &item.EmployeeID, &item.EmployeeName,
			&item.JobID, &item.JobNumber, &item.BusinessUnit, &item.Type,
			&item.Revenue, &item.Rate, &item.Amount, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
