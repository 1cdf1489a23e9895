package commission

import "errors"

var (
	ErrNoResultsForPeriod = errors.New("no calculation results stored for this pay period")
)
