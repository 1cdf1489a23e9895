package fixtures

import (
	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT BUSINESS UNITS
// ==========================================

// GetDefaultBusinessUnits returns the standard trade units seeded into an
// empty installation. All rates start at zero so no commission is paid
// until an operator configures each unit deliberately; the setup
// validation report flags them until that happens.
func GetDefaultBusinessUnits() []businessunit.BusinessUnit {
	return []businessunit.BusinessUnit{
		{Name: "HVAC Services", Description: strPtr("Heating, ventilation and cooling jobs"), Enabled: true, LeadGenRate: decimal.Zero, SalesRate: decimal.Zero, WorkDoneRate: decimal.Zero},
		{Name: "Plumbing", Description: strPtr("Plumbing installation and repair"), Enabled: true, LeadGenRate: decimal.Zero, SalesRate: decimal.Zero, WorkDoneRate: decimal.Zero},
		{Name: "Electrical", Description: strPtr("Electrical installation and repair"), Enabled: true, LeadGenRate: decimal.Zero, SalesRate: decimal.Zero, WorkDoneRate: decimal.Zero},
		{Name: "Drain Cleaning", Description: strPtr("Drain and sewer service calls"), Enabled: true, LeadGenRate: decimal.Zero, SalesRate: decimal.Zero, WorkDoneRate: decimal.Zero},
	}
}

func strPtr(s string) *string { return &s }
