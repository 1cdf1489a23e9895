package job

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job - one validated revenue record. Lead generator, salesperson, and
// technicians are employee names as they appeared in the ledger; matching
// against the roster happens at calculation time.
type Job struct {
	ID              string
	UploadID        *string
	JobNumber       string
	JobDate         *time.Time
	Customer        *string
	BusinessUnit    string
	Revenue         decimal.Decimal
	LeadGeneratedBy *string
	SoldBy          *string
	Technicians     []string
	CreatedAt       time.Time
}
