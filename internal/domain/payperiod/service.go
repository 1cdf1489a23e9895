package payperiod

import "context"

// PayPeriodService defines business logic for the pay schedule.
type PayPeriodService interface {
	UpsertScheduleConfig(ctx context.Context, req UpsertScheduleConfigRequest) (ScheduleConfigResponse, error)
	GetScheduleConfig(ctx context.Context) (ScheduleConfigResponse, error)

	Generate(ctx context.Context, req GeneratePeriodsRequest) ([]PayPeriodResponse, error)
	List(ctx context.Context) ([]PayPeriodResponse, error)
	GetByID(ctx context.Context, id string) (PayPeriodResponse, error)

	// Current resolves the single period containing today, or
	// ErrNoActivePeriod when the schedule has a gap or ran out.
	Current(ctx context.Context) (PayPeriodResponse, error)
	GetStats(ctx context.Context) (PeriodStatsResponse, error)
}
