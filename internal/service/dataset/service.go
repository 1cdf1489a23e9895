package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/domain/job"
	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/domain/timesheet"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/fieldpay/commission-backend-go/internal/pkg/storage"
	"github.com/fieldpay/commission-backend-go/internal/pkg/validator"
	"github.com/fieldpay/commission-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultBatchListLimit = 20
	maxBatchListLimit     = 100
)

type DatasetServiceImpl struct {
	db            *database.DB
	uploadRepo    dataset.UploadRepository
	timesheetRepo timesheet.TimesheetRepository
	jobRepo       job.JobRepository
	unitRepo      businessunit.BusinessUnitRepository
	payPeriodRepo payperiod.PayPeriodRepository
	fileStorage   storage.FileStorage

	// fallbackUnit, when non-empty, is assigned to revenue rows whose
	// business unit cell is blank instead of dropping them.
	fallbackUnit string
}

func NewDatasetService(
	db *database.DB,
	uploadRepo dataset.UploadRepository,
	timesheetRepo timesheet.TimesheetRepository,
	jobRepo job.JobRepository,
	unitRepo businessunit.BusinessUnitRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
	fileStorage storage.FileStorage,
	fallbackUnit string,
) dataset.DatasetService {
	return &DatasetServiceImpl{
		db:            db,
		uploadRepo:    uploadRepo,
		timesheetRepo: timesheetRepo,
		jobRepo:       jobRepo,
		unitRepo:      unitRepo,
		payPeriodRepo: payPeriodRepo,
		fileStorage:   fileStorage,
		fallbackUnit:  fallbackUnit,
	}
}

// ========== UPLOAD PROCESSING ==========

func (s *DatasetServiceImpl) ProcessUpload(ctx context.Context, req dataset.ProcessUploadRequest) (dataset.UploadResponse, error) {
	if err := req.Validate(); err != nil {
		return dataset.UploadResponse{}, err
	}
	if req.PayPeriodID != nil {
		if _, err := s.payPeriodRepo.GetByID(ctx, *req.PayPeriodID); err != nil {
			return dataset.UploadResponse{}, err
		}
	}

	data, err := io.ReadAll(req.File)
	if err != nil {
		return dataset.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	table, err := parseCSV(data)
	if err != nil {
		return dataset.UploadResponse{}, err
	}

	// The raw file is retained as-is so a batch can always be traced back
	// to what was actually sent.
	storedPath := fmt.Sprintf("uploads/%s/%s%s", req.Kind, uuid.NewString(), strings.ToLower(filepath.Ext(req.FileName)))
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), storedPath); err != nil {
		return dataset.UploadResponse{}, fmt.Errorf("failed to store upload: %w", err)
	}

	switch dataset.DatasetKind(req.Kind) {
	case dataset.DatasetKindTimesheet:
		return s.processTimesheet(ctx, req, table, storedPath)
	case dataset.DatasetKindRevenue:
		return s.processRevenue(ctx, req, table, storedPath)
	default:
		s.discardStoredFile(ctx, storedPath)
		return dataset.UploadResponse{}, dataset.ErrInvalidDatasetKind
	}
}

func (s *DatasetServiceImpl) processTimesheet(ctx context.Context, req dataset.ProcessUploadRequest, table dataset.RawTable, storedPath string) (dataset.UploadResponse, error) {
	outcome, err := ValidateTimesheet(table)
	if err != nil {
		s.discardStoredFile(ctx, storedPath)
		return dataset.UploadResponse{}, err
	}

	batch := dataset.UploadBatch{
		Kind:          dataset.DatasetKindTimesheet,
		OriginalName:  req.FileName,
		StoredPath:    storedPath,
		PayPeriodID:   req.PayPeriodID,
		TotalRows:     outcome.Stats.TotalRows,
		ValidRows:     outcome.Stats.ValidRows,
		InvalidRows:   outcome.Stats.InvalidRows,
		DuplicateRows: outcome.Stats.DuplicateRows,
		QualityScore:  outcome.Score,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.uploadRepo.CreateBatch(txCtx, batch)
		if err != nil {
			return err
		}
		batch = created

		entries := make([]timesheet.TimesheetEntry, len(outcome.Entries))
		for i, entry := range outcome.Entries {
			entry.UploadID = &created.ID
			entries[i] = entry
		}
		if _, err := s.timesheetRepo.BulkInsert(txCtx, entries); err != nil {
			return fmt.Errorf("failed to insert timesheet entries: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardStoredFile(ctx, storedPath)
		return dataset.UploadResponse{}, err
	}

	slog.Info("timesheet upload processed",
		"upload_id", batch.ID,
		"file", req.FileName,
		"valid_rows", batch.ValidRows,
		"invalid_rows", batch.InvalidRows,
		"quality_score", batch.QualityScore,
	)
	return mapToUploadResponse(batch, outcome.Stats.ColumnsFound, outcome.Errors), nil
}

func (s *DatasetServiceImpl) processRevenue(ctx context.Context, req dataset.ProcessUploadRequest, table dataset.RawTable, storedPath string) (dataset.UploadResponse, error) {
	outcome, err := ValidateRevenue(table, s.fallbackUnit)
	if err != nil {
		s.discardStoredFile(ctx, storedPath)
		return dataset.UploadResponse{}, err
	}

	batch := dataset.UploadBatch{
		Kind:          dataset.DatasetKindRevenue,
		OriginalName:  req.FileName,
		StoredPath:    storedPath,
		PayPeriodID:   req.PayPeriodID,
		TotalRows:     outcome.Stats.TotalRows,
		ValidRows:     outcome.Stats.ValidRows,
		InvalidRows:   outcome.Stats.InvalidRows,
		DuplicateRows: outcome.Stats.DuplicateRows,
		QualityScore:  outcome.Score,
	}

	var autoAdded []businessunit.BusinessUnit
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.uploadRepo.CreateBatch(txCtx, batch)
		if err != nil {
			return err
		}
		batch = created

		// Unseen business units are registered disabled with zero rates so
		// they show up for configuration instead of failing silently later.
		autoAdded, err = s.unitRepo.EnsureExists(txCtx, distinctUnitNames(outcome.Jobs))
		if err != nil {
			return fmt.Errorf("failed to register business units: %w", err)
		}

		jobs := make([]job.Job, len(outcome.Jobs))
		for i, j := range outcome.Jobs {
			j.UploadID = &created.ID
			jobs[i] = j
		}
		if _, err := s.jobRepo.BulkInsert(txCtx, jobs); err != nil {
			return fmt.Errorf("failed to insert jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardStoredFile(ctx, storedPath)
		return dataset.UploadResponse{}, err
	}

	slog.Info("revenue upload processed",
		"upload_id", batch.ID,
		"file", req.FileName,
		"valid_rows", batch.ValidRows,
		"invalid_rows", batch.InvalidRows,
		"duplicate_rows", batch.DuplicateRows,
		"quality_score", batch.QualityScore,
	)
	for _, unit := range autoAdded {
		slog.Info("business unit auto-added from upload", "upload_id", batch.ID, "unit", unit.Name)
	}
	return mapToUploadResponse(batch, outcome.Stats.ColumnsFound, outcome.Errors), nil
}

func (s *DatasetServiceImpl) discardStoredFile(ctx context.Context, storedPath string) {
	if err := s.fileStorage.Delete(ctx, storedPath); err != nil {
		slog.Warn("failed to remove stored upload", "path", storedPath, "error", err)
	}
}

func distinctUnitNames(jobs []job.Job) []string {
	seen := make(map[string]bool, len(jobs))
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		key := strings.ToLower(strings.TrimSpace(j.BusinessUnit))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, strings.TrimSpace(j.BusinessUnit))
	}
	return names
}

// parseCSV splits a raw CSV payload into headers and data rows. Ragged rows
// are tolerated; the validator pads short rows per cell.
func parseCSV(data []byte) (dataset.RawTable, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("%w: %v", dataset.ErrMalformedFile, err)
	}
	if len(records) == 0 {
		return dataset.RawTable{}, dataset.ErrEmptyDataset
	}
	return dataset.RawTable{Headers: records[0], Rows: records[1:]}, nil
}

// ========== BATCH LOOKUPS ==========

func (s *DatasetServiceImpl) GetBatch(ctx context.Context, id string) (dataset.UploadResponse, error) {
	if !validator.IsValidUUID(id) {
		return dataset.UploadResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}

	batch, err := s.uploadRepo.GetBatchByID(ctx, id)
	if err != nil {
		return dataset.UploadResponse{}, err
	}
	return mapToUploadResponse(batch, nil, nil), nil
}

func (s *DatasetServiceImpl) ListBatches(ctx context.Context, limit int) ([]dataset.UploadResponse, error) {
	if limit <= 0 {
		limit = defaultBatchListLimit
	}
	if limit > maxBatchListLimit {
		limit = maxBatchListLimit
	}

	batches, err := s.uploadRepo.ListBatches(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dataset.UploadResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, mapToUploadResponse(batch, nil, nil))
	}
	return responses, nil
}

// ========== RESPONSE MAPPING ==========

// mapToUploadResponse converts a batch to its API shape. Row findings and
// detected columns only exist for a fresh validation pass; stored batches
// carry counts and the score.
func mapToUploadResponse(batch dataset.UploadBatch, columnsFound []string, rowErrors []dataset.RowError) dataset.UploadResponse {
	response := dataset.UploadResponse{
		ID:           batch.ID,
		Kind:         string(batch.Kind),
		FileName:     batch.OriginalName,
		PayPeriodID:  batch.PayPeriodID,
		Valid:        true,
		QualityScore: batch.QualityScore.Round(2),
		Stats: dataset.UploadStatsResponse{
			TotalRows:     batch.TotalRows,
			ValidRows:     batch.ValidRows,
			InvalidRows:   batch.InvalidRows,
			DuplicateRows: batch.DuplicateRows,
			ColumnsFound:  columnsFound,
		},
		CreatedAt: batch.CreatedAt,
	}
	for _, rowError := range rowErrors {
		response.Errors = append(response.Errors, dataset.RowErrorResponse{
			Row:       rowError.Row,
			Column:    rowError.Column,
			ErrorType: rowError.ErrorType,
			Message:   rowError.Message,
			Value:     rowError.Value,
		})
	}
	return response
}
