package payperiod

import (
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
)

// GeneratePeriods expands a schedule configuration into count contiguous,
// non-overlapping periods starting at the configured first start date.
// Each period's pay date is its end date plus the configured delay.
func GeneratePeriods(config payperiod.ScheduleConfig, count int) []payperiod.PayPeriod {
	periods := make([]payperiod.PayPeriod, 0, count)
	start := dateOnly(config.FirstPeriodStart)

	for number := 1; number <= count; number++ {
		end := periodEnd(config.ScheduleType, start)
		periods = append(periods, payperiod.PayPeriod{
			PeriodNumber: number,
			StartDate:    start,
			EndDate:      end,
			PayDate:      end.AddDate(0, 0, config.PayDelayDays),
			ScheduleType: config.ScheduleType,
		})
		start = end.AddDate(0, 0, 1)
	}

	return periods
}

func periodEnd(scheduleType payperiod.ScheduleType, start time.Time) time.Time {
	switch scheduleType {
	case payperiod.ScheduleTypeWeekly:
		return start.AddDate(0, 0, 6)
	case payperiod.ScheduleTypeBiWeekly:
		return start.AddDate(0, 0, 13)
	case payperiod.ScheduleTypeSemiMonthly:
		// First half ends on the 15th, second half on the last day of the
		// month, whatever length the month has. A mid-month first start
		// aligns to its half so the following periods land on the 1st/16th.
		if start.Day() <= 15 {
			return time.Date(start.Year(), start.Month(), 15, 0, 0, 0, 0, time.UTC)
		}
		return endOfMonth(start)
	case payperiod.ScheduleTypeMonthly:
		if start.Day() == 1 {
			return endOfMonth(start)
		}
		return addMonthClamped(start).AddDate(0, 0, -1)
	default:
		return start
	}
}

// CurrentPeriod returns the single period whose inclusive date range
// contains today, or ErrNoActivePeriod when no period matches. It never
// falls back to the nearest period.
func CurrentPeriod(periods []payperiod.PayPeriod, today time.Time) (payperiod.PayPeriod, error) {
	for _, p := range periods {
		if p.Contains(today) {
			return p, nil
		}
	}
	return payperiod.PayPeriod{}, payperiod.ErrNoActivePeriod
}

// BuildStats derives schedule progress for today from the generated
// periods.
func BuildStats(periods []payperiod.PayPeriod, config *payperiod.ScheduleConfig, today time.Time) payperiod.PeriodStats {
	stats := payperiod.PeriodStats{TotalPeriods: len(periods)}
	if config != nil {
		scheduleType := config.ScheduleType
		stats.ScheduleType = &scheduleType
	}

	day := dateOnly(today)
	for _, p := range periods {
		if p.Contains(today) {
			number := p.PeriodNumber
			stats.CurrentPeriodNumber = &number
		}
		if p.StartDate.After(day) {
			stats.PeriodsRemaining++
		}
		if !p.PayDate.Before(day) {
			if stats.NextPayDate == nil || p.PayDate.Before(*stats.NextPayDate) {
				payDate := p.PayDate
				stats.NextPayDate = &payDate
			}
		}
	}

	return stats
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// addMonthClamped advances one month, clamping the day to the target
// month's length instead of letting the overflow spill into the month
// after (time.AddDate turns Jan 31 + 1 month into Mar 2/3).
func addMonthClamped(t time.Time) time.Time {
	year, month := t.Year(), t.Month()+1
	if month > time.December {
		year++
		month = time.January
	}
	day := t.Day()
	if last := endOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
