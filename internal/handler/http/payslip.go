package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	GetPayslip(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	FinalizeBatch(w http.ResponseWriter, r *http.Request)
	SendPayslip(w http.ResponseWriter, r *http.Request)
	UpdatePeriod(w http.ResponseWriter, r *http.Request)
	PreviewOtherInputs(w http.ResponseWriter, r *http.Request)
	PaymentDays(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

// payslipIDParam returns the {id} URL parameter, writing a 422 when it is not a UUID.
func payslipIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{"id": "must be a valid UUID"})
		return "", false
	}
	return id, true
}

// ========== PAYSLIPS ==========

func (h *payslipHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := payslipIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.payslipService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := payslipIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.payslipService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip confirmed", result)
}

func (h *payslipHandlerImpl) FinalizeBatch(w http.ResponseWriter, r *http.Request) {
	var req payslip.FinalizePayslipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payslipService.FinalizeBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips confirmed", result)
}

func (h *payslipHandlerImpl) SendPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := payslipIDParam(w, r)
	if !ok {
		return
	}

	if err := h.payslipService.SendPayslip(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip sent", nil)
}

func (h *payslipHandlerImpl) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := payslipIDParam(w, r)
	if !ok {
		return
	}

	var req payslip.UpdatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payslipService.UpdatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) PreviewOtherInputs(w http.ResponseWriter, r *http.Request) {
	id, ok := payslipIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.payslipService.PreviewOtherInputs(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== CALCULATORS ==========

func (h *payslipHandlerImpl) PaymentDays(w http.ResponseWriter, r *http.Request) {
	req := payslip.PaymentDaysRequest{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	result, err := h.payslipService.PaymentDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
