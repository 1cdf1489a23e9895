package payperiod

import (
	"context"
	"time"
)

// PayPeriodRepository defines data access methods for schedule config and
// generated periods.
type PayPeriodRepository interface {
	UpsertScheduleConfig(ctx context.Context, config ScheduleConfig) (ScheduleConfig, error)
	GetScheduleConfig(ctx context.Context) (ScheduleConfig, error)

	ReplacePeriods(ctx context.Context, periods []PayPeriod, replaceExisting bool) ([]PayPeriod, error)
	GetByID(ctx context.Context, id string) (PayPeriod, error)
	List(ctx context.Context) ([]PayPeriod, error)
	GetContaining(ctx context.Context, day time.Time) (PayPeriod, error)
	CountWithResults(ctx context.Context) (int64, error)
}
