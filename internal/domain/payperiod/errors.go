package payperiod

import "errors"

var (
	ErrNoActivePeriod        = errors.New("no pay period contains the current date")
	ErrPayPeriodNotFound     = errors.New("pay period not found")
	ErrScheduleNotConfigured = errors.New("pay schedule is not configured")
	ErrPeriodsHaveResults    = errors.New("existing pay periods have stored calculation results")
)
