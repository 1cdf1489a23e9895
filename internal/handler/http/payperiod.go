package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
	"github.com/fieldpay/commission-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayPeriodHandler interface {
	UpsertScheduleConfig(w http.ResponseWriter, r *http.Request)
	GetScheduleConfig(w http.ResponseWriter, r *http.Request)
	GeneratePeriods(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	GetCurrentPeriod(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payPeriodService payperiod.PayPeriodService
}

func NewPayPeriodHandler(payPeriodService payperiod.PayPeriodService) PayPeriodHandler {
	return &payPeriodHandlerImpl{
		payPeriodService: payPeriodService,
	}
}

// UpsertScheduleConfig implements PayPeriodHandler
func (h *payPeriodHandlerImpl) UpsertScheduleConfig(w http.ResponseWriter, r *http.Request) {
	var req payperiod.UpsertScheduleConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payPeriodService.UpsertScheduleConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay schedule saved successfully", result)
}

// GetScheduleConfig implements PayPeriodHandler
func (h *payPeriodHandlerImpl) GetScheduleConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetScheduleConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GeneratePeriods implements PayPeriodHandler
func (h *payPeriodHandlerImpl) GeneratePeriods(w http.ResponseWriter, r *http.Request) {
	var req payperiod.GeneratePeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.payPeriodService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay periods generated successfully", results)
}

// ListPeriods implements PayPeriodHandler
func (h *payPeriodHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	results, err := h.payPeriodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetPeriod implements PayPeriodHandler
func (h *payPeriodHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay period ID is required", nil)
		return
	}

	result, err := h.payPeriodService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCurrentPeriod implements PayPeriodHandler
func (h *payPeriodHandlerImpl) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.Current(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStats implements PayPeriodHandler
func (h *payPeriodHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
