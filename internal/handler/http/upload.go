package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldpay/commission-backend-go/internal/domain/dataset"
	"github.com/fieldpay/commission-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	datasetService dataset.DatasetService
}

func NewUploadHandler(datasetService dataset.DatasetService) UploadHandler {
	return &uploadHandlerImpl{
		datasetService: datasetService,
	}
}

// Upload implements UploadHandler - multipart CSV ingestion
func (h *uploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "File is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := dataset.ProcessUploadRequest{
		Kind:     kind,
		FileName: fileHeader.Filename,
		File:     file,
	}
	if payPeriodID := r.FormValue("pay_period_id"); payPeriodID != "" {
		req.PayPeriodID = &payPeriodID
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.datasetService.ProcessUpload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Upload processed successfully", result)
}

// GetBatch implements UploadHandler
func (h *uploadHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Upload batch ID is required", nil)
		return
	}

	result, err := h.datasetService.GetBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBatches implements UploadHandler
func (h *uploadHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	results, err := h.datasetService.ListBatches(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
