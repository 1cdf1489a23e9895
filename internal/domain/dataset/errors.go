package dataset

import "errors"

var (
	ErrInvalidDatasetKind     = errors.New("invalid dataset kind")
	ErrEmptyDataset           = errors.New("dataset contains no data rows")
	ErrMalformedFile          = errors.New("file could not be parsed")
	ErrMissingRequiredColumns = errors.New("dataset is missing required columns")
	ErrUploadNotFound         = errors.New("upload batch not found")
)
