package commission

import (
	"strings"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectiveRates - the resolved commission rates for one (employee, unit)
// pair, already normalized from stored percentages to fractions of revenue.
type EffectiveRates struct {
	LeadGen  decimal.Decimal
	Sales    decimal.Decimal
	WorkDone decimal.Decimal
}

// ConfigSnapshot holds everything a calculation run needs to resolve names
// and rates: the roster, the business units, and per-employee overrides. It
// is built once per run from repository state and never mutated, so a run
// sees one consistent configuration no matter how long it takes.
type ConfigSnapshot struct {
	employeesByName map[string]employee.Employee
	unitsByName     map[string]businessunit.BusinessUnit
	overrides       map[string]map[string]employee.RateOverride // unit ID -> employee ID
}

// NewConfigSnapshot indexes the given configuration for name lookups. Name
// matching is trimmed and case-insensitive; datasets rarely agree with the
// roster on capitalization.
func NewConfigSnapshot(
	employees []employee.Employee,
	units []businessunit.BusinessUnit,
	overrides []employee.RateOverride,
) *ConfigSnapshot {
	s := &ConfigSnapshot{
		employeesByName: make(map[string]employee.Employee, len(employees)),
		unitsByName:     make(map[string]businessunit.BusinessUnit, len(units)),
		overrides:       make(map[string]map[string]employee.RateOverride),
	}
	for _, e := range employees {
		s.employeesByName[foldName(e.Name)] = e
	}
	for _, u := range units {
		s.unitsByName[foldName(u.Name)] = u
	}
	for _, o := range overrides {
		byEmployee, ok := s.overrides[o.BusinessUnitID]
		if !ok {
			byEmployee = make(map[string]employee.RateOverride)
			s.overrides[o.BusinessUnitID] = byEmployee
		}
		byEmployee[o.EmployeeID] = o
	}
	return s
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupEmployee resolves a dataset name against the roster.
func (s *ConfigSnapshot) LookupEmployee(name string) (employee.Employee, bool) {
	e, ok := s.employeesByName[foldName(name)]
	return e, ok
}

// LookupUnit resolves a dataset business unit name. A miss is the
// "not configured" signal: the caller reports it and skips the job's
// commissions rather than assuming zero rates.
func (s *ConfigSnapshot) LookupUnit(name string) (businessunit.BusinessUnit, bool) {
	u, ok := s.unitsByName[foldName(name)]
	return u, ok
}

// ResolveRates returns the effective rates for an employee on a unit:
// field-by-field, a non-nil override field wins and nil fields fall back to
// the unit default. Stored percentages become fractions here, once, so the
// calculator never divides by 100 again.
func (s *ConfigSnapshot) ResolveRates(employeeID string, unit businessunit.BusinessUnit) EffectiveRates {
	leadGen := unit.LeadGenRate
	sales := unit.SalesRate
	workDone := unit.WorkDoneRate

	if byEmployee, ok := s.overrides[unit.ID]; ok {
		if o, ok := byEmployee[employeeID]; ok {
			if o.LeadGenRate != nil {
				leadGen = *o.LeadGenRate
			}
			if o.SalesRate != nil {
				sales = *o.SalesRate
			}
			if o.WorkDoneRate != nil {
				workDone = *o.WorkDoneRate
			}
		}
	}

	return EffectiveRates{
		LeadGen:  leadGen.Div(hundred),
		Sales:    sales.Div(hundred),
		WorkDone: workDone.Div(hundred),
	}
}
