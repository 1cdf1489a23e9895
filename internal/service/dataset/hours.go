package dataset

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Timesheet exports arrive in several hour formats depending on the source
// system: plain decimals ("7.5"), clock notation ("7:30" or "7:30:00"), and
// verbose durations ("7h 30m"). All of them normalize to decimal hours here
// so the rest of the pipeline only ever sees one shape.

var (
	sixty          = decimal.NewFromInt(60)
	thirtySixHund  = decimal.NewFromInt(3600)
	verboseHourRe  = regexp.MustCompile(`(\d+)\s*h`)
	verboseMinRe   = regexp.MustCompile(`(\d+)\s*m`)
	leadingNumRe   = regexp.MustCompile(`^-?\d+(\.\d+)?`)
	thousandsSepRe = regexp.MustCompile(`[,$%\s]`)
)

// ParseHours converts one hour cell to decimal hours. An empty cell is zero
// hours, not an error; anything that cannot be read in any supported format
// reports ok=false so the caller can drop and count the row.
func ParseHours(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, true
	}

	// Clock notation: HH:MM or HH:MM:SS.
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return decimal.Zero, false
		}
		hours, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return decimal.Zero, false
		}
		minutes, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return decimal.Zero, false
		}
		total := hours.Add(minutes.Div(sixty))
		if len(parts) == 3 {
			seconds, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
			if err != nil {
				return decimal.Zero, false
			}
			total = total.Add(seconds.Div(thirtySixHund))
		}
		return total, true
	}

	// Verbose durations: "7h 30m", "45m", "8h".
	lower := strings.ToLower(s)
	hourMatch := verboseHourRe.FindStringSubmatch(lower)
	minMatch := verboseMinRe.FindStringSubmatch(lower)
	if hourMatch != nil || minMatch != nil {
		total := decimal.Zero
		if hourMatch != nil {
			hours, err := decimal.NewFromString(hourMatch[1])
			if err != nil {
				return decimal.Zero, false
			}
			total = total.Add(hours)
		}
		if minMatch != nil {
			minutes, err := decimal.NewFromString(minMatch[1])
			if err != nil {
				return decimal.Zero, false
			}
			total = total.Add(minutes.Div(sixty))
		}
		return total, true
	}

	// Plain decimal.
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// ParseAmount coerces a money cell to a decimal, tolerating currency
// symbols, thousands separators, and stray percent signs ("$1,234.50",
// "1 234"). Empty cells and cells with no leading number fail.
func ParseAmount(cell string) (decimal.Decimal, bool) {
	s := thousandsSepRe.ReplaceAllString(strings.TrimSpace(cell), "")
	if s == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		// Fall back to a leading numeric prefix ("1234.50 USD").
		prefix := leadingNumRe.FindString(s)
		if prefix == "" {
			return decimal.Zero, false
		}
		value, err = decimal.NewFromString(prefix)
		if err != nil {
			return decimal.Zero, false
		}
	}
	return value, true
}
