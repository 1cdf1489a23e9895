package dataset

import (
	"io"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== UPLOAD DTOs ==========

type ProcessUploadRequest struct {
	Kind        string
	FileName    string
	File        io.Reader
	PayPeriodID *string
}

func (r *ProcessUploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, ValidKinds()) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'timesheet' or 'revenue'"})
	}
	if validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "is required"})
	}
	if r.PayPeriodID != nil && !validator.IsValidUUID(*r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RowErrorResponse struct {
	Row       int    `json:"row"`
	Column    string `json:"column,omitempty"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
	Value     string `json:"value,omitempty"`
}

type UploadStatsResponse struct {
	TotalRows     int      `json:"total_rows"`
	ValidRows     int      `json:"valid_rows"`
	InvalidRows   int      `json:"invalid_rows"`
	DuplicateRows int      `json:"duplicate_rows"`
	ColumnsFound  []string `json:"columns_found"`
}

type UploadResponse struct {
	ID           string              `json:"id"`
	Kind         string              `json:"kind"`
	FileName     string              `json:"file_name"`
	PayPeriodID  *string             `json:"pay_period_id,omitempty"`
	Valid        bool                `json:"valid"`
	QualityScore decimal.Decimal     `json:"quality_score"`
	Stats        UploadStatsResponse `json:"stats"`
	Errors       []RowErrorResponse  `json:"errors,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}
