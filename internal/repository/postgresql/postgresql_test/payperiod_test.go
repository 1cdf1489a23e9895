package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func createTestPeriods(t *testing.T, ctx context.Context) []payperiod.PayPeriod {
	t.Helper()
	repo := postgresql.NewPayPeriodRepository(testDB.DB)
	periods, err := repo.ReplacePeriods(ctx, []payperiod.PayPeriod{
		{PeriodNumber: 1, StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 15), PayDate: day(2025, 1, 20), ScheduleType: payperiod.ScheduleTypeSemiMonthly},
		{PeriodNumber: 2, StartDate: day(2025, 1, 16), EndDate: day(2025, 1, 31), PayDate: day(2025, 2, 5), ScheduleType: payperiod.ScheduleTypeSemiMonthly},
	}, false)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	return periods
}

func TestPayPeriodRepository_ScheduleConfigSingleton(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewPayPeriodRepository(testDB.DB)

	_, err := repo.GetScheduleConfig(ctx)
	assert.ErrorIs(t, err, payperiod.ErrScheduleNotConfigured)

	first, err := repo.UpsertScheduleConfig(ctx, payperiod.ScheduleConfig{
		ScheduleType:     payperiod.ScheduleTypeWeekly,
		FirstPeriodStart: day(2025, 1, 6),
		PayDelayDays:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, payperiod.ScheduleTypeWeekly, first.ScheduleType)

	// A second upsert replaces the singleton instead of adding a row
	second, err := repo.UpsertScheduleConfig(ctx, payperiod.ScheduleConfig{
		ScheduleType:     payperiod.ScheduleTypeMonthly,
		FirstPeriodStart: day(2025, 2, 1),
		PayDelayDays:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, payperiod.ScheduleTypeMonthly, second.ScheduleType)
	assert.Equal(t, 10, second.PayDelayDays)

	stored, err := repo.GetScheduleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, payperiod.ScheduleTypeMonthly, stored.ScheduleType)
}

func TestPayPeriodRepository_ReplacePeriods(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewPayPeriodRepository(testDB.DB)

	createTestPeriods(t, ctx)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].PeriodNumber)
	assert.True(t, listed[0].StartDate.Equal(day(2025, 1, 1)))

	// Replacing discards the old schedule entirely
	replaced, err := repo.ReplacePeriods(ctx, []payperiod.PayPeriod{
		{PeriodNumber: 1, StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31), PayDate: day(2025, 4, 5), ScheduleType: payperiod.ScheduleTypeMonthly},
	}, true)
	require.NoError(t, err)
	require.Len(t, replaced, 1)

	listed, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, payperiod.ScheduleTypeMonthly, listed[0].ScheduleType)
}

func TestPayPeriodRepository_GetContaining(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewPayPeriodRepository(testDB.DB)

	periods := createTestPeriods(t, ctx)

	// Boundary days are inclusive on both ends
	found, err := repo.GetContaining(ctx, day(2025, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, periods[0].ID, found.ID)

	found, err = repo.GetContaining(ctx, day(2025, 1, 16))
	require.NoError(t, err)
	assert.Equal(t, periods[1].ID, found.ID)

	_, err = repo.GetContaining(ctx, day(2025, 2, 1))
	assert.ErrorIs(t, err, payperiod.ErrNoActivePeriod)
}

func TestPayPeriodRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewPayPeriodRepository(testDB.DB)

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, payperiod.ErrPayPeriodNotFound)
}

func TestPayPeriodRepository_CountWithResults(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewPayPeriodRepository(testDB.DB)

	createTestPeriods(t, ctx)

	count, err := repo.CountWithResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
