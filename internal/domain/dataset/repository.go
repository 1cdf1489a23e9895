package dataset

import "context"

// UploadRepository defines data access methods for upload batches.
type UploadRepository interface {
	CreateBatch(ctx context.Context, batch UploadBatch) (UploadBatch, error)
	GetBatchByID(ctx context.Context, id string) (UploadBatch, error)
	ListBatches(ctx context.Context, limit int) ([]UploadBatch, error)
}
