package payperiod

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func config(scheduleType payperiod.ScheduleType, firstStart time.Time, delayDays int) payperiod.ScheduleConfig {
	return payperiod.ScheduleConfig{
		ScheduleType:     scheduleType,
		FirstPeriodStart: firstStart,
		PayDelayDays:     delayDays,
	}
}

func TestGeneratePeriodsWeekly(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeWeekly, day(2026, time.March, 2), 5), 3)

	require.Len(t, periods, 3)
	assert.Equal(t, day(2026, time.March, 2), periods[0].StartDate)
	assert.Equal(t, day(2026, time.March, 8), periods[0].EndDate)
	assert.Equal(t, day(2026, time.March, 13), periods[0].PayDate)
	assert.Equal(t, day(2026, time.March, 9), periods[1].StartDate)
	assert.Equal(t, day(2026, time.March, 15), periods[1].EndDate)
	assert.Equal(t, 1, periods[0].PeriodNumber)
	assert.Equal(t, 2, periods[1].PeriodNumber)
}

func TestGeneratePeriodsBiWeekly(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeBiWeekly, day(2026, time.March, 2), 0), 2)

	require.Len(t, periods, 2)
	assert.Equal(t, day(2026, time.March, 15), periods[0].EndDate)
	assert.Equal(t, day(2026, time.March, 16), periods[1].StartDate)
	assert.Equal(t, day(2026, time.March, 29), periods[1].EndDate)
}

func TestGeneratePeriodsSemiMonthlyLeapYear(t *testing.T) {
	// From Jan 1 of a leap year: 1st-15th and 16th-EOM halves, with the
	// February second half ending on the 29th.
	periods := GeneratePeriods(config(payperiod.ScheduleTypeSemiMonthly, day(2024, time.January, 1), 0), 4)

	require.Len(t, periods, 4)
	assert.Equal(t, day(2024, time.January, 1), periods[0].StartDate)
	assert.Equal(t, day(2024, time.January, 15), periods[0].EndDate)
	assert.Equal(t, day(2024, time.January, 16), periods[1].StartDate)
	assert.Equal(t, day(2024, time.January, 31), periods[1].EndDate)
	assert.Equal(t, day(2024, time.February, 1), periods[2].StartDate)
	assert.Equal(t, day(2024, time.February, 15), periods[2].EndDate)
	assert.Equal(t, day(2024, time.February, 16), periods[3].StartDate)
	assert.Equal(t, day(2024, time.February, 29), periods[3].EndDate)
}

func TestGeneratePeriodsSemiMonthlyCommonYear(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeSemiMonthly, day(2023, time.February, 1), 0), 2)

	require.Len(t, periods, 2)
	assert.Equal(t, day(2023, time.February, 15), periods[0].EndDate)
	assert.Equal(t, day(2023, time.February, 28), periods[1].EndDate)
}

func TestGeneratePeriodsSemiMonthlyMidMonthStartAligns(t *testing.T) {
	// A first start inside a half produces one short period, then the
	// schedule lands on the usual 1st/16th boundaries.
	periods := GeneratePeriods(config(payperiod.ScheduleTypeSemiMonthly, day(2026, time.March, 10), 0), 3)

	require.Len(t, periods, 3)
	assert.Equal(t, day(2026, time.March, 15), periods[0].EndDate)
	assert.Equal(t, day(2026, time.March, 16), periods[1].StartDate)
	assert.Equal(t, day(2026, time.March, 31), periods[1].EndDate)
	assert.Equal(t, day(2026, time.April, 1), periods[2].StartDate)
	assert.Equal(t, day(2026, time.April, 15), periods[2].EndDate)
}

func TestGeneratePeriodsMonthly(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeMonthly, day(2026, time.January, 1), 10), 3)

	require.Len(t, periods, 3)
	assert.Equal(t, day(2026, time.January, 31), periods[0].EndDate)
	assert.Equal(t, day(2026, time.February, 10), periods[0].PayDate)
	assert.Equal(t, day(2026, time.February, 1), periods[1].StartDate)
	assert.Equal(t, day(2026, time.February, 28), periods[1].EndDate)
	assert.Equal(t, day(2026, time.March, 1), periods[2].StartDate)
	assert.Equal(t, day(2026, time.March, 31), periods[2].EndDate)
}

func TestGeneratePeriodsMonthlyMidMonth(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeMonthly, day(2026, time.January, 15), 0), 2)

	require.Len(t, periods, 2)
	assert.Equal(t, day(2026, time.February, 14), periods[0].EndDate)
	assert.Equal(t, day(2026, time.February, 15), periods[1].StartDate)
	assert.Equal(t, day(2026, time.March, 14), periods[1].EndDate)
}

func TestGeneratePeriodsContiguousAndNonOverlapping(t *testing.T) {
	scheduleTypes := []payperiod.ScheduleType{
		payperiod.ScheduleTypeWeekly,
		payperiod.ScheduleTypeBiWeekly,
		payperiod.ScheduleTypeSemiMonthly,
		payperiod.ScheduleTypeMonthly,
	}
	starts := []time.Time{
		day(2024, time.January, 1),
		day(2024, time.February, 16),
		day(2026, time.December, 20),
	}

	for _, scheduleType := range scheduleTypes {
		for _, start := range starts {
			t.Run(fmt.Sprintf("%s_%s", scheduleType, start.Format("2006-01-02")), func(t *testing.T) {
				periods := GeneratePeriods(config(scheduleType, start, 7), 12)
				require.Len(t, periods, 12)
				for i, p := range periods {
					assert.False(t, p.EndDate.Before(p.StartDate), "period %d inverted", p.PeriodNumber)
					assert.Equal(t, p.EndDate.AddDate(0, 0, 7), p.PayDate, "period %d pay date", p.PeriodNumber)
					if i > 0 {
						assert.Equal(t, periods[i-1].EndDate.AddDate(0, 0, 1), p.StartDate,
							"period %d does not start the day after period %d ends", p.PeriodNumber, periods[i-1].PeriodNumber)
					}
				}
			})
		}
	}
}

func TestCurrentPeriod(t *testing.T) {
	periods := GeneratePeriods(config(payperiod.ScheduleTypeSemiMonthly, day(2026, time.January, 1), 0), 6)

	current, err := CurrentPeriod(periods, day(2026, time.February, 20))
	require.NoError(t, err)
	assert.Equal(t, 4, current.PeriodNumber)

	// Boundary days belong to the period on both ends.
	first, err := CurrentPeriod(periods, day(2026, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, first.PeriodNumber)
	last, err := CurrentPeriod(periods, day(2026, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, last.PeriodNumber)

	_, err = CurrentPeriod(periods, day(2025, time.December, 31))
	assert.True(t, errors.Is(err, payperiod.ErrNoActivePeriod))
	_, err = CurrentPeriod(periods, day(2026, time.June, 1))
	assert.True(t, errors.Is(err, payperiod.ErrNoActivePeriod))
}

func TestPeriodStatusDerivation(t *testing.T) {
	p := payperiod.PayPeriod{
		StartDate: day(2026, time.March, 16),
		EndDate:   day(2026, time.March, 31),
	}

	assert.Equal(t, payperiod.PeriodStatusFuture, p.StatusOn(day(2026, time.March, 15)))
	assert.Equal(t, payperiod.PeriodStatusActive, p.StatusOn(day(2026, time.March, 16)))
	assert.Equal(t, payperiod.PeriodStatusActive, p.StatusOn(day(2026, time.March, 31)))
	assert.Equal(t, payperiod.PeriodStatusCompleted, p.StatusOn(day(2026, time.April, 1)))
}

func TestBuildStats(t *testing.T) {
	cfg := config(payperiod.ScheduleTypeSemiMonthly, day(2026, time.January, 1), 5)
	periods := GeneratePeriods(cfg, 6)

	today := day(2026, time.February, 20)
	stats := BuildStats(periods, &cfg, today)

	assert.Equal(t, 6, stats.TotalPeriods)
	require.NotNil(t, stats.CurrentPeriodNumber)
	assert.Equal(t, 4, *stats.CurrentPeriodNumber)
	// Period 3 ended Feb 15 and pays Feb 20, today itself: a pay date due
	// today still counts as the next one.
	require.NotNil(t, stats.NextPayDate)
	assert.Equal(t, day(2026, time.February, 20), *stats.NextPayDate)
	assert.Equal(t, 2, stats.PeriodsRemaining)
	require.NotNil(t, stats.ScheduleType)
	assert.Equal(t, payperiod.ScheduleTypeSemiMonthly, *stats.ScheduleType)
}

func TestBuildStatsOutsideSchedule(t *testing.T) {
	cfg := config(payperiod.ScheduleTypeWeekly, day(2026, time.January, 5), 3)
	periods := GeneratePeriods(cfg, 2)

	stats := BuildStats(periods, &cfg, day(2026, time.June, 1))
	assert.Nil(t, stats.CurrentPeriodNumber)
	assert.Nil(t, stats.NextPayDate)
	assert.Equal(t, 0, stats.PeriodsRemaining)
}
