package businessunit

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessUnit - a revenue-generating division with default commission
// rates. Rates are percentages in [0,100]; the engine normalizes them to
// fractions when it builds a calculation snapshot.
type BusinessUnit struct {
	ID           string
	Name         string
	Description  *string
	Enabled      bool
	AutoAdded    bool
	LeadGenRate  decimal.Decimal
	SalesRate    decimal.Decimal
	WorkDoneRate decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RateSum returns the combined percentage of the three categories. Validated
// against 100 at configuration time; calculation trusts stored units.
func (b BusinessUnit) RateSum() decimal.Decimal {
	return b.LeadGenRate.Add(b.SalesRate).Add(b.WorkDoneRate)
}

// HasRates reports whether any commission category is configured.
func (b BusinessUnit) HasRates() bool {
	return b.LeadGenRate.IsPositive() || b.SalesRate.IsPositive() || b.WorkDoneRate.IsPositive()
}

// SetupIssueSeverity enum
type SetupIssueSeverity string

const (
	SetupIssueSeverityError   SetupIssueSeverity = "error"
	SetupIssueSeverityWarning SetupIssueSeverity = "warning"
)

// SetupIssue - one finding from a commission setup validation pass
type SetupIssue struct {
	Severity SetupIssueSeverity
	Scope    string // "business_unit" | "rate_override" | "employee_reference"
	Subject  string
	Message  string
}
