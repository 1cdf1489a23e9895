package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepositoryImpl struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.PayPeriodRepository {
	return &payPeriodRepositoryImpl{db: db}
}

// ========== SCHEDULE CONFIG ==========

// UpsertScheduleConfig implements payperiod.PayPeriodRepository. The config
// table holds a single row, keyed by a constant singleton column.
func (p *payPeriodRepositoryImpl) UpsertScheduleConfig(ctx context.Context, config payperiod.ScheduleConfig) (payperiod.ScheduleConfig, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO pay_schedule_config (singleton, schedule_type, first_period_start, pay_delay_days)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE SET
			schedule_type = EXCLUDED.schedule_type,
			first_period_start = EXCLUDED.first_period_start,
			pay_delay_days = EXCLUDED.pay_delay_days,
			updated_at = NOW()
		RETURNING id, schedule_type, first_period_start, pay_delay_days, created_at, updated_at
	`

	var saved payperiod.ScheduleConfig
	err := q.QueryRow(ctx, query, config.ScheduleType, config.FirstPeriodStart, config.PayDelayDays).Scan(
		&saved.ID, &saved.ScheduleType, &saved.FirstPeriodStart, &saved.PayDelayDays,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payperiod.ScheduleConfig{}, fmt.Errorf("failed to upsert schedule config: %w", err)
	}
	return saved, nil
}

// GetScheduleConfig implements payperiod.PayPeriodRepository.
func (p *payPeriodRepositoryImpl) GetScheduleConfig(ctx context.Context) (payperiod.ScheduleConfig, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, schedule_type, first_period_start, pay_delay_days, created_at, updated_at
		FROM pay_schedule_config
		LIMIT 1
	`

	var config payperiod.ScheduleConfig
	err := q.QueryRow(ctx, query).Scan(
		&config.ID, &config.ScheduleType, &config.FirstPeriodStart, &config.PayDelayDays,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.ScheduleConfig{}, payperiod.ErrScheduleNotConfigured
		}
		return payperiod.ScheduleConfig{}, fmt.Errorf("failed to get schedule config: %w", err)
	}
	return config, nil
}

// ========== PERIODS ==========

// ReplacePeriods implements payperiod.PayPeriodRepository. The delete and
// the inserts run in one transaction so a failed generation never leaves a
// partial schedule behind.
func (p *payPeriodRepositoryImpl) ReplacePeriods(ctx context.Context, periods []payperiod.PayPeriod, replaceExisting bool) ([]payperiod.PayPeriod, error) {
	insertQuery := `
		INSERT INTO pay_periods (period_number, start_date, end_date, pay_date, schedule_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, period_number, start_date, end_date, pay_date, schedule_type, created_at
	`

	var saved []payperiod.PayPeriod
	err := WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		if replaceExisting {
			if _, err := tx.Exec(ctx, "DELETE FROM pay_periods"); err != nil {
				return fmt.Errorf("failed to clear pay periods: %w", err)
			}
		}

		for _, period := range periods {
			var row payperiod.PayPeriod
			err := tx.QueryRow(ctx, insertQuery,
				period.PeriodNumber, period.StartDate, period.EndDate, period.PayDate, period.ScheduleType,
			).Scan(
				&row.ID, &row.PeriodNumber, &row.StartDate, &row.EndDate, &row.PayDate,
				&row.ScheduleType, &row.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert pay period %d: %w", period.PeriodNumber, err)
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByID implements payperiod.PayPeriodRepository.
func (p *payPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, period_number, start_date, end_date, pay_date, schedule_type, created_at
		FROM pay_periods
		WHERE id = $1
	`

	var found payperiod.PayPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.PeriodNumber, &found.StartDate, &found.EndDate, &found.PayDate,
		&found.ScheduleType, &found.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period by id: %w", err)
	}
	return found, nil
}

// List implements payperiod.PayPeriodRepository.
func (p *payPeriodRepositoryImpl) List(ctx context.Context) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, period_number, start_date, end_date, pay_date, schedule_type, created_at
		FROM pay_periods
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payperiod.PayPeriod
	for rows.Next() {
		var period payperiod.PayPeriod
		err := rows.Scan(
			&period.ID, &period.PeriodNumber, &period.StartDate, &period.EndDate, &period.PayDate,
			&period.ScheduleType, &period.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, period)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

// GetContaining implements payperiod.PayPeriodRepository.
func (p *payPeriodRepositoryImpl) GetContaining(ctx context.Context, day time.Time) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, period_number, start_date, end_date, pay_date, schedule_type, created_at
		FROM pay_periods
		WHERE $1::date BETWEEN start_date AND end_date
		LIMIT 1
	`

	var found payperiod.PayPeriod
	err := q.QueryRow(ctx, query, day).Scan(
		&found.ID, &found.PeriodNumber, &found.StartDate, &found.EndDate, &found.PayDate,
		&found.ScheduleType, &found.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrNoActivePeriod
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get current pay period: %w", err)
	}
	return found, nil
}

// CountWithResults implements payperiod.PayPeriodRepository.
func (p *payPeriodRepositoryImpl) CountWithResults(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COUNT(*)
		FROM pay_periods p
		WHERE EXISTS (SELECT 1 FROM commission_line_items i WHERE i.pay_period_id = p.id)
		   OR EXISTS (SELECT 1 FROM employee_pay_summaries s WHERE s.pay_period_id = p.id)
	`

	var total int64
	if err := q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count periods with results: %w", err)
	}
	return total, nil
}
