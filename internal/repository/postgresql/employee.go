package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// ========== ROSTER ==========

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (employee_code, name, department, hire_date, hourly_rate, status, commission_plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.Name, emp.Department, emp.HireDate,
		emp.HourlyRate, emp.Status, emp.CommissionPlan,
	).Scan(
		&created.ID, &created.EmployeeCode, &created.Name, &created.Department,
		&created.HireDate, &created.HourlyRate, &created.Status, &created.CommissionPlan,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.EmployeeCode, &found.Name, &found.Department,
		&found.HireDate, &found.HourlyRate, &found.Status, &found.CommissionPlan,
		&found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return found, nil
}

// GetByName implements employee.EmployeeRepository. Matching is trimmed and
// case-insensitive, the same folding the calculation engine applies to
// dataset names.
func (e *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
		FROM employees
		WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, name).Scan(
		&found.ID, &found.EmployeeCode, &found.Name, &found.Department,
		&found.HireDate, &found.HourlyRate, &found.Status, &found.CommissionPlan,
		&found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by name: %w", err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Plan != nil && *filter.Plan != "" {
		conditions = append(conditions, fmt.Sprintf("commission_plan = $%d", argIdx))
		args = append(args, *filter.Plan)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR employee_code ILIKE $%d OR department ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
		FROM employees
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Department,
			&emp.HireDate, &emp.HourlyRate, &emp.Status, &emp.CommissionPlan,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// GetAll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
		FROM employees
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Department,
			&emp.HireDate, &emp.HourlyRate, &emp.Status, &emp.CommissionPlan,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	updates := make(map[string]interface{})

	if req.EmployeeCode != nil {
		if *req.EmployeeCode == "" {
			updates["employee_code"] = nil
		} else {
			updates["employee_code"] = *req.EmployeeCode
		}
	}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Department != nil {
		if *req.Department == "" {
			updates["department"] = nil
		} else {
			updates["department"] = *req.Department
		}
	}
	if req.HireDate != nil {
		if *req.HireDate == "" {
			updates["hire_date"] = nil
		} else {
			parsedHireDate, _ := time.Parse("2006-01-02", *req.HireDate)
			updates["hire_date"] = parsedHireDate
		}
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.Status != nil && *req.Status != "" {
		updates["status"] = *req.Status
	}
	if req.CommissionPlan != nil && *req.CommissionPlan != "" {
		updates["commission_plan"] = *req.CommissionPlan
	}

	if len(updates) == 0 {
		return e.GetByID(ctx, req.ID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	query := fmt.Sprintf(`
		UPDATE employees SET %s WHERE id = $%d
		RETURNING id, employee_code, name, department, hire_date, hourly_rate, status, commission_plan, created_at, updated_at
	`, strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updated employee.Employee
	err := q.QueryRow(ctx, query, args...).Scan(
		&updated.ID, &updated.EmployeeCode, &updated.Name, &updated.Department,
		&updated.HireDate, &updated.HourlyRate, &updated.Status, &updated.CommissionPlan,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.EmployeeStatus) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	return nil
}

// GetSummary implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetSummary(ctx context.Context) (employee.EmployeeSummary, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(AVG(hourly_rate), 0),
			COUNT(*) FILTER (WHERE commission_plan = $5),
			COUNT(*) FILTER (WHERE commission_plan = $6)
		FROM employees
	`

	var summary employee.EmployeeSummary
	err := q.QueryRow(ctx, query,
		employee.EmployeeStatusActive, employee.EmployeeStatusInactive,
		employee.EmployeeStatusHelperApprentice, employee.EmployeeStatusExcludedFromPayroll,
		employee.CommissionPlanEfficiencyPay, employee.CommissionPlanHourlyPlusCommission,
	).Scan(
		&summary.TotalEmployees, &summary.ActiveEmployees, &summary.InactiveEmployees,
		&summary.HelperApprenticeEmployees, &summary.ExcludedEmployees, &summary.AvgHourlyRate,
		&summary.EfficiencyPayCount, &summary.HourlyPlusCommissionCount,
	)
	if err != nil {
		return employee.EmployeeSummary{}, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return summary, nil
}

// ========== RATE OVERRIDES ==========

// UpsertOverride implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpsertOverride(ctx context.Context, override employee.RateOverride) (employee.RateOverride, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		WITH upserted AS (
			INSERT INTO employee_rate_overrides (employee_id, business_unit_id, lead_gen_rate, sales_rate, work_done_rate)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_id, business_unit_id) DO UPDATE SET
				lead_gen_rate = EXCLUDED.lead_gen_rate,
				sales_rate = EXCLUDED.sales_rate,
				work_done_rate = EXCLUDED.work_done_rate,
				updated_at = NOW()
			RETURNING id, employee_id, business_unit_id, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
		)
		SELECT u.id, u.employee_id, u.business_unit_id, u.lead_gen_rate, u.sales_rate, u.work_done_rate,
			u.created_at, u.updated_at, b.name
		FROM upserted u
		JOIN business_units b ON u.business_unit_id = b.id
	`

	var saved employee.RateOverride
	err := q.QueryRow(ctx, query,
		override.EmployeeID, override.BusinessUnitID,
		override.LeadGenRate, override.SalesRate, override.WorkDoneRate,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.BusinessUnitID,
		&saved.LeadGenRate, &saved.SalesRate, &saved.WorkDoneRate,
		&saved.CreatedAt, &saved.UpdatedAt, &saved.BusinessUnitName,
	)
	if err != nil {
		return employee.RateOverride{}, fmt.Errorf("failed to upsert rate override: %w", err)
	}
	return saved, nil
}

// GetOverridesByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetOverridesByEmployeeID(ctx context.Context, employeeID string) ([]employee.RateOverride, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT o.id, o.employee_id, o.business_unit_id, o.lead_gen_rate, o.sales_rate, o.work_done_rate,
			o.created_at, o.updated_at, b.name
		FROM employee_rate_overrides o
		JOIN business_units b ON o.business_unit_id = b.id
		WHERE o.employee_id = $1
		ORDER BY b.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate overrides: %w", err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// GetAllOverrides implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetAllOverrides(ctx context.Context) ([]employee.RateOverride, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT o.id, o.employee_id, o.business_unit_id, o.lead_gen_rate, o.sales_rate, o.work_done_rate,
			o.created_at, o.updated_at, b.name
		FROM employee_rate_overrides o
		JOIN business_units b ON o.business_unit_id = b.id
		ORDER BY o.employee_id, b.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate overrides: %w", err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// DeleteOverride implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DeleteOverride(ctx context.Context, employeeID, businessUnitID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		DELETE FROM employee_rate_overrides
		WHERE employee_id = $1 AND business_unit_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, employeeID, businessUnitID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrOverrideNotFound
		}
		return fmt.Errorf("failed to delete rate override: %w", err)
	}
	return nil
}

func scanOverrides(rows pgx.Rows) ([]employee.RateOverride, error) {
	var overrides []employee.RateOverride
	for rows.Next() {
		var override employee.RateOverride
		err := rows.Scan(
			&override.ID, &override.EmployeeID, &override.BusinessUnitID,
			&override.LeadGenRate, &override.SalesRate, &override.WorkDoneRate,
			&override.CreatedAt, &override.UpdatedAt, &override.BusinessUnitName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate override: %w", err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return overrides, nil
}
