package dataset

import "context"

// DatasetService ingests uploaded tabular files: store the raw file,
// validate and clean rows, persist the survivors, report the rest.
// Per-row findings are returned with the upload response; only the counts
// are persisted on the batch.
type DatasetService interface {
	ProcessUpload(ctx context.Context, req ProcessUploadRequest) (UploadResponse, error)
	GetBatch(ctx context.Context, id string) (UploadResponse, error)
	ListBatches(ctx context.Context, limit int) ([]UploadResponse, error)
}
