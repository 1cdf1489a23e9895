package payperiod

import "time"

// ScheduleType enum
type ScheduleType string

const (
	ScheduleTypeWeekly      ScheduleType = "Weekly"
	ScheduleTypeBiWeekly    ScheduleType = "Bi-Weekly"
	ScheduleTypeSemiMonthly ScheduleType = "Semi-Monthly"
	ScheduleTypeMonthly     ScheduleType = "Monthly"
)

func ValidScheduleTypes() []string {
	return []string{
		string(ScheduleTypeWeekly),
		string(ScheduleTypeBiWeekly),
		string(ScheduleTypeSemiMonthly),
		string(ScheduleTypeMonthly),
	}
}

// PeriodStatus enum. Derived from the current date on every read, never
// stored, so a period row can stay immutable after generation.
type PeriodStatus string

const (
	PeriodStatusFuture    PeriodStatus = "Future"
	PeriodStatusActive    PeriodStatus = "Active"
	PeriodStatusCompleted PeriodStatus = "Completed"
)

// PayPeriod - one date range over which hours and revenue are aggregated
// for a calculation run. Start and end are inclusive; periods of one
// schedule are contiguous and non-overlapping.
type PayPeriod struct {
	ID           string
	PeriodNumber int
	StartDate    time.Time
	EndDate      time.Time
	PayDate      time.Time
	ScheduleType ScheduleType
	CreatedAt    time.Time
}

// StatusOn derives the period status relative to the given day.
func (p PayPeriod) StatusOn(today time.Time) PeriodStatus {
	day := truncateToDay(today)
	switch {
	case day.Before(truncateToDay(p.StartDate)):
		return PeriodStatusFuture
	case day.After(truncateToDay(p.EndDate)):
		return PeriodStatusCompleted
	default:
		return PeriodStatusActive
	}
}

// Contains reports whether the day falls inside [StartDate, EndDate].
func (p PayPeriod) Contains(today time.Time) bool {
	return p.StatusOn(today) == PeriodStatusActive
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ScheduleConfig - the single active pay schedule configuration. Periods
// are generated from it, not derived on the fly.
type ScheduleConfig struct {
	ID               string
	ScheduleType     ScheduleType
	FirstPeriodStart time.Time
	PayDelayDays     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PeriodStats - schedule progress relative to today
type PeriodStats struct {
	TotalPeriods        int
	CurrentPeriodNumber *int
	NextPayDate         *time.Time
	PeriodsRemaining    int
	ScheduleType        *ScheduleType
}
