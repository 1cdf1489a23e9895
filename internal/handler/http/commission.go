package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldpay/commission-backend-go/internal/domain/commission"
	"github.com/fieldpay/commission-backend-go/internal/handler/http/response"
)

type CommissionHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetBreakdown(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type commissionHandlerImpl struct {
	commissionService commission.CommissionService
}

func NewCommissionHandler(commissionService commission.CommissionService) CommissionHandler {
	return &commissionHandlerImpl{
		commissionService: commissionService,
	}
}

// Calculate implements CommissionHandler - runs the engine for one period
func (h *commissionHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req commission.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commissionService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calculation completed successfully", result)
}

// GetBreakdown implements CommissionHandler
func (h *commissionHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	payPeriodID := r.URL.Query().Get("pay_period_id")
	if employeeID == "" || payPeriodID == "" {
		response.BadRequest(w, "employee_id and pay_period_id are required", nil)
		return
	}

	result, err := h.commissionService.GetJobBreakdown(r.Context(), employeeID, payPeriodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements CommissionHandler
func (h *commissionHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	payPeriodID := r.URL.Query().Get("pay_period_id")
	if payPeriodID == "" {
		response.BadRequest(w, "pay_period_id is required", nil)
		return
	}

	result, err := h.commissionService.GetSummary(r.Context(), payPeriodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
