package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// Canonical field names. Diagnostics and stats refer to columns by these,
// never by the raw header text, so API consumers get stable identifiers.
const (
	FieldEmployeeName    = "employee_name"
	FieldRegularHours    = "regular_hours"
	FieldOvertimeHours   = "overtime_hours"
	FieldDoubleTimeHours = "double_time_hours"
	FieldWorkDate        = "work_date"
	FieldJobNumber       = "job_number"
	FieldBusinessUnit    = "business_unit"
	FieldRevenue         = "revenue"
	FieldLeadGeneratedBy = "lead_generated_by"
	FieldSoldBy          = "sold_by"
	FieldTechnicians     = "technicians"
	FieldJobDate         = "job_date"
	FieldCustomer        = "customer"
)

// ========== COLUMN DETECTION ==========

// columnSpec maps one canonical field to the header spellings seen in the
// wild. Exact aliases are matched first across the whole table; contains
// matching only runs for fields still unresolved, so "Sold By" is never
// swallowed by the revenue column's "sales" substring.
type columnSpec struct {
	field     string
	aliases   []string
	contains  []string
	essential bool
}

var timesheetColumns = []columnSpec{
	{
		field:     FieldEmployeeName,
		aliases:   []string{"employee name", "name", "employee", "technician", "tech name", "worker"},
		essential: true,
	},
	{
		field:    FieldRegularHours,
		aliases:  []string{"regular hours", "reg hours", "regular", "reg", "hours", "total hours"},
		contains: []string{"regular"},
	},
	{
		field:    FieldOvertimeHours,
		aliases:  []string{"ot hours", "overtime hours", "overtime", "ot"},
		contains: []string{"overtime"},
	},
	{
		field:    FieldDoubleTimeHours,
		aliases:  []string{"dt hours", "double time hours", "double time", "dt", "doubletime"},
		contains: []string{"double"},
	},
	{
		field:   FieldWorkDate,
		aliases: []string{"date", "work date", "day", "shift date"},
	},
}

var revenueColumns = []columnSpec{
	{
		field:   FieldJobNumber,
		aliases: []string{"job", "job number", "job #", "job no", "job no.", "invoice", "invoice #", "invoice number"},
	},
	{
		field:     FieldBusinessUnit,
		aliases:   []string{"business unit", "unit", "department", "division", "trade"},
		contains:  []string{"unit", "business", "department"},
		essential: true,
	},
	{
		field:     FieldRevenue,
		aliases:   []string{"revenue", "total revenue", "jobs total revenue", "amount", "total", "job total"},
		contains:  []string{"revenue", "total", "amount", "sales"},
		essential: true,
	},
	{
		field:    FieldLeadGeneratedBy,
		aliases:  []string{"lead generated by", "lead gen by", "lead by", "lead generator"},
		contains: []string{"lead"},
	},
	{
		field:   FieldSoldBy,
		aliases: []string{"sold by", "salesperson", "sales rep", "sales person"},
	},
	{
		field:    FieldTechnicians,
		aliases:  []string{"assigned technicians", "technicians", "technician", "tech", "techs"},
		contains: []string{"technician"},
	},
	{
		field:   FieldJobDate,
		aliases: []string{"date", "job date", "invoice date", "completed date", "completion date"},
	},
	{
		field:    FieldCustomer,
		aliases:  []string{"customer", "customer name", "client", "client name"},
		contains: []string{"customer"},
	},
}

func normalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(header))), " ")
}

// resolveColumns assigns headers to fields in two deterministic passes:
// exact aliases first, substring fallbacks second. Each header feeds at most
// one field. Returns field -> column index plus any essential fields that
// could not be found.
func resolveColumns(headers []string, specs []columnSpec) (map[string]int, []string) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	found := make(map[string]int, len(specs))
	used := make(map[int]bool, len(headers))

	for _, spec := range specs {
		for i, h := range normalized {
			if used[i] || h == "" {
				continue
			}
			for _, alias := range spec.aliases {
				if h == alias {
					found[spec.field] = i
					used[i] = true
					break
				}
			}
			if _, ok := found[spec.field]; ok {
				break
			}
		}
	}

	for _, spec := range specs {
		if _, ok := found[spec.field]; ok || len(spec.contains) == 0 {
			continue
		}
		for i, h := range normalized {
			if used[i] || h == "" {
				continue
			}
			for _, fragment := range spec.contains {
				if strings.Contains(h, fragment) {
					found[spec.field] = i
					used[i] = true
					break
				}
			}
			if _, ok := found[spec.field]; ok {
				break
			}
		}
	}

	var missing []string
	for _, spec := range specs {
		if _, ok := found[spec.field]; spec.essential && !ok {
			missing = append(missing, spec.field)
		}
	}
	return found, missing
}

// ========== ROW HELPERS ==========

var summaryPrefixes = []string{"grand total", "subtotal", "total", "summary"}

// isSummaryCell reports whether a first-column value marks an appended
// total/summary row rather than a data row.
func isSummaryCell(cell string) bool {
	v := strings.ToLower(strings.TrimSpace(cell))
	if v == "" {
		return false
	}
	for _, prefix := range summaryPrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SplitNames splits a multi-person cell ("Alice, Bob & Carol") into trimmed
// names, dropping empties.
func SplitNames(cell string) []string {
	replaced := strings.ReplaceAll(cell, "&", ",")
	parts := strings.Split(replaced, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func cellAt(row []string, idx int, ok bool) string {
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func optionalString(cell string) *string {
	if v := strings.TrimSpace(cell); v != "" {
		return &v
	}
	return nil
}

// ========== VALIDATION ==========

// TimesheetValidation is the outcome of validating one timesheet table.
// Entries carry no IDs yet; persistence assigns them.
type TimesheetValidation struct {
	Entries []timesheet.TimesheetEntry
	Errors  []dataset.RowError
	Stats   dataset.UploadStats
	Score   decimal.Decimal
}

// RevenueValidation is the outcome of validating one revenue table.
type RevenueValidation struct {
	Jobs   []job.Job
	Errors []dataset.RowError
	Stats  dataset.UploadStats
	Score  decimal.Decimal
}

// ValidateTimesheet cleans a raw timesheet table into entries. Rows with an
// unreadable hour cell or no employee name are dropped and reported; blank
// hour cells mean zero hours. Only a missing essential column fails the
// whole table.
func ValidateTimesheet(table dataset.RawTable) (*TimesheetValidation, error) {
	if len(table.Headers) == 0 || len(table.Rows) == 0 {
		return nil, dataset.ErrEmptyDataset
	}

	columns, missing := resolveColumns(table.Headers, timesheetColumns)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrMissingRequiredColumns, strings.Join(missing, ", "))
	}

	nameIdx, nameOK := columns[FieldEmployeeName]
	regIdx, regOK := columns[FieldRegularHours]
	otIdx, otOK := columns[FieldOvertimeHours]
	dtIdx, dtOK := columns[FieldDoubleTimeHours]
	dateIdx, dateOK := columns[FieldWorkDate]

	result := &TimesheetValidation{
		Entries: make([]timesheet.TimesheetEntry, 0, len(table.Rows)),
	}
	rowsWithRequired := 0
	numericCells := 0
	numericParsed := 0

	hourColumns := []struct {
		field string
		idx   int
		ok    bool
	}{
		{FieldRegularHours, regIdx, regOK},
		{FieldOvertimeHours, otIdx, otOK},
		{FieldDoubleTimeHours, dtIdx, dtOK},
	}

	for i, row := range table.Rows {
		rowNum := i + 1

		if isSummaryCell(cellAt(row, 0, true)) {
			result.Errors = append(result.Errors, dataset.RowError{
				Row:       rowNum,
				Column:    FieldEmployeeName,
				ErrorType: dataset.ErrorTypeSummaryRow,
				Message:   "summary row removed",
				Value:     strings.TrimSpace(cellAt(row, 0, true)),
			})
			result.Stats.InvalidRows++
			continue
		}

		name := strings.TrimSpace(cellAt(row, nameIdx, nameOK))
		if name == "" {
			result.Errors = append(result.Errors, dataset.RowError{
				Row:       rowNum,
				Column:    FieldEmployeeName,
				ErrorType: dataset.ErrorTypeMissingValue,
				Message:   "employee name is required",
			})
			result.Stats.InvalidRows++
			continue
		}
		rowsWithRequired++

		entry := timesheet.TimesheetEntry{EmployeeName: name}
		rowValid := true
		for _, col := range hourColumns {
			if !col.ok {
				continue
			}
			numericCells++
			raw := cellAt(row, col.idx, col.ok)
			hours, ok := ParseHours(raw)
			if !ok {
				result.Errors = append(result.Errors, dataset.RowError{
					Row:       rowNum,
					Column:    col.field,
					ErrorType: dataset.ErrorTypeInvalidNumber,
					Message:   "unreadable hours value",
					Value:     strings.TrimSpace(raw),
				})
				rowValid = false
				continue
			}
			numericParsed++
			switch col.field {
			case FieldRegularHours:
				entry.RegularHours = hours
			case FieldOvertimeHours:
				entry.OvertimeHours = hours
			case FieldDoubleTimeHours:
				entry.DoubleTimeHours = hours
			}
		}
		if !rowValid {
			result.Stats.InvalidRows++
			continue
		}

		if raw := strings.TrimSpace(cellAt(row, dateIdx, dateOK)); raw != "" {
			if parsed, ok := parseDate(raw); ok {
				entry.WorkDate = &parsed
			} else {
				// Date is advisory; keep the row undated.
				result.Errors = append(result.Errors, dataset.RowError{
					Row:       rowNum,
					Column:    FieldWorkDate,
					ErrorType: dataset.ErrorTypeInvalidDate,
					Message:   "unreadable date, entry kept without one",
					Value:     raw,
				})
			}
		}

		result.Entries = append(result.Entries, entry)
		result.Stats.ValidRows++
	}

	result.Stats.TotalRows = len(table.Rows)
	result.Stats.ColumnsFound = foundFields(columns, timesheetColumns)
	result.Score = qualityScore(len(table.Rows), rowsWithRequired, numericCells, numericParsed, 0)
	return result, nil
}

// ValidateRevenue cleans a raw revenue table into jobs. Summary rows, rows
// with unreadable or non-positive revenue, and repeated job numbers are
// dropped and reported. A non-empty fallbackUnit keeps rows whose business
// unit cell is blank by assigning them that unit instead of dropping them.
func ValidateRevenue(table dataset.RawTable, fallbackUnit string) (*RevenueValidation, error) {
	if len(table.Headers) == 0 || len(table.Rows) == 0 {
		return nil, dataset.ErrEmptyDataset
	}

	columns, missing := resolveColumns(table.Headers, revenueColumns)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrMissingRequiredColumns, strings.Join(missing, ", "))
	}

	jobIdx, jobOK := columns[FieldJobNumber]
	unitIdx, unitOK := columns[FieldBusinessUnit]
	revIdx, revOK := columns[FieldRevenue]
	leadIdx, leadOK := columns[FieldLeadGeneratedBy]
	soldIdx, soldOK := columns[FieldSoldBy]
	techIdx, techOK := columns[FieldTechnicians]
	dateIdx, dateOK := columns[FieldJobDate]
	custIdx, custOK := columns[FieldCustomer]

	result := &RevenueValidation{
		Jobs: make([]job.Job, 0, len(table.Rows)),
	}
	rowsWithRequired := 0
	numericCells := 0
	numericParsed := 0
	seenJobNumbers := make(map[string]bool)

	for i, row := range table.Rows {
		rowNum := i + 1

		unit := strings.TrimSpace(cellAt(row, unitIdx, unitOK))
		summary := isSummaryCell(cellAt(row, 0, true))
		if unit == "" && fallbackUnit != "" && !summary {
			unit = fallbackUnit
		}
		if summary || unit == "" {
			value := strings.TrimSpace(cellAt(row, 0, true))
			result.Errors = append(result.Errors, dataset.RowError{
				Row:       rowNum,
				Column:    FieldBusinessUnit,
				ErrorType: dataset.ErrorTypeSummaryRow,
				Message:   "summary row or missing business unit removed",
				Value:     value,
			})
			result.Stats.InvalidRows++
			continue
		}

		numericCells++
		rawRevenue := cellAt(row, revIdx, revOK)
		revenue, ok := ParseAmount(rawRevenue)
		if !ok {
			result.Errors = append(result.Errors, dataset.RowError{
				Row:       rowNum,
				Column:    FieldRevenue,
				ErrorType: dataset.ErrorTypeInvalidNumber,
				Message:   "unreadable revenue amount",
				Value:     strings.TrimSpace(rawRevenue),
			})
			result.Stats.InvalidRows++
			continue
		}
		numericParsed++
		rowsWithRequired++

		if revenue.Sign() <= 0 {
			result.Errors = append(result.Errors, dataset.RowError{
				Row:       rowNum,
				Column:    FieldRevenue,
				ErrorType: dataset.ErrorTypeZeroRevenue,
				Message:   "revenue must be positive",
				Value:     revenue.String(),
			})
			result.Stats.InvalidRows++
			continue
		}

		jobNumber := strings.TrimSpace(cellAt(row, jobIdx, jobOK))
		if jobNumber != "" {
			key := strings.ToUpper(jobNumber)
			if seenJobNumbers[key] {
				result.Errors = append(result.Errors, dataset.RowError{
					Row:       rowNum,
					Column:    FieldJobNumber,
					ErrorType: dataset.ErrorTypeDuplicateJob,
					Message:   "job number already seen, row removed",
					Value:     jobNumber,
				})
				result.Stats.DuplicateRows++
				continue
			}
			seenJobNumbers[key] = true
		}

		j := job.Job{
			JobNumber:       jobNumber,
			BusinessUnit:    unit,
			Revenue:         revenue,
			LeadGeneratedBy: optionalString(cellAt(row, leadIdx, leadOK)),
			SoldBy:          optionalString(cellAt(row, soldIdx, soldOK)),
			Technicians:     SplitNames(cellAt(row, techIdx, techOK)),
			Customer:        optionalString(cellAt(row, custIdx, custOK)),
		}
		if raw := strings.TrimSpace(cellAt(row, dateIdx, dateOK)); raw != "" {
			if parsed, ok := parseDate(raw); ok {
				j.JobDate = &parsed
			} else {
				result.Errors = append(result.Errors, dataset.RowError{
					Row:       rowNum,
					Column:    FieldJobDate,
					ErrorType: dataset.ErrorTypeInvalidDate,
					Message:   "unreadable date, job kept without one",
					Value:     raw,
				})
			}
		}

		result.Jobs = append(result.Jobs, j)
		result.Stats.ValidRows++
	}

	result.Stats.TotalRows = len(table.Rows)
	result.Stats.ColumnsFound = foundFields(columns, revenueColumns)
	result.Score = qualityScore(len(table.Rows), rowsWithRequired, numericCells, numericParsed, result.Stats.DuplicateRows)
	return result, nil
}

func foundFields(columns map[string]int, specs []columnSpec) []string {
	fields := make([]string, 0, len(columns))
	for _, spec := range specs {
		if _, ok := columns[spec.field]; ok {
			fields = append(fields, spec.field)
		}
	}
	return fields
}

// ========== QUALITY SCORE ==========

var (
	weightRequired = decimal.NewFromInt(50)
	weightNumeric  = decimal.NewFromInt(30)
	weightDupes    = decimal.NewFromInt(20)
)

// qualityScore grades a dataset in [0,100]: 50 points for rows carrying all
// required fields, 30 for numeric cells that parsed, 20 for the absence of
// duplicate job numbers. Advisory only; it never gates an upload.
func qualityScore(totalRows, rowsWithRequired, numericCells, numericParsed, duplicates int) decimal.Decimal {
	requiredFrac := fraction(rowsWithRequired, totalRows)
	numericFrac := fraction(numericParsed, numericCells)

	dupFactor := decimal.NewFromInt(1)
	if duplicates > 0 && totalRows > 0 {
		dupFactor = dupFactor.Sub(fraction(duplicates, totalRows))
		if dupFactor.Sign() < 0 {
			dupFactor = decimal.Zero
		}
	}

	return weightRequired.Mul(requiredFrac).
		Add(weightNumeric.Mul(numericFrac)).
		Add(weightDupes.Mul(dupFactor))
}

func fraction(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(whole)))
}
