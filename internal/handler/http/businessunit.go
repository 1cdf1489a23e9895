package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BusinessUnitHandler interface {
	CreateBusinessUnit(w http.ResponseWriter, r *http.Request)
	GetBusinessUnit(w http.ResponseWriter, r *http.Request)
	ListBusinessUnits(w http.ResponseWriter, r *http.Request)
	UpdateBusinessUnit(w http.ResponseWriter, r *http.Request)
	ValidateSetup(w http.ResponseWriter, r *http.Request)
}

type businessUnitHandlerImpl struct {
	businessUnitService businessunit.BusinessUnitService
}

func NewBusinessUnitHandler(businessUnitService businessunit.BusinessUnitService) BusinessUnitHandler {
	return &businessUnitHandlerImpl{
		businessUnitService: businessUnitService,
	}
}

// CreateBusinessUnit implements BusinessUnitHandler
func (h *businessUnitHandlerImpl) CreateBusinessUnit(w http.ResponseWriter, r *http.Request) {
	var req businessunit.CreateBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.businessUnitService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business unit created successfully", result)
}

// GetBusinessUnit implements BusinessUnitHandler
func (h *businessUnitHandlerImpl) GetBusinessUnit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Business unit ID is required", nil)
		return
	}

	result, err := h.businessUnitService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBusinessUnits implements BusinessUnitHandler
func (h *businessUnitHandlerImpl) ListBusinessUnits(w http.ResponseWriter, r *http.Request) {
	filter := businessunit.BusinessUnitFilter{}

	if enabledOnly := r.URL.Query().Get("enabled_only"); enabledOnly == "true" {
		filter.EnabledOnly = true
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}

	results, err := h.businessUnitService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateBusinessUnit implements BusinessUnitHandler
func (h *businessUnitHandlerImpl) UpdateBusinessUnit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Business unit ID is required", nil)
		return
	}

	var req businessunit.UpdateBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.businessUnitService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business unit updated successfully", result)
}

// ValidateSetup implements BusinessUnitHandler. The body is optional; an
// empty one runs the global configuration checks only.
func (h *businessUnitHandlerImpl) ValidateSetup(w http.ResponseWriter, r *http.Request) {
	var req businessunit.ValidateSetupRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.businessUnitService.ValidateSetup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
