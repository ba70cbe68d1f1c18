package http

import (
	"encoding/json"
	"net/http"

	"github.com/hadirhq/hadir-backend-go/internal/domain/payroll"
	"github.com/hadirhq/hadir-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Disburse(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Preview implements PayrollHandler.
func (p *PayrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var generateReq payroll.GeneratePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := p.payrollService.Preview(r.Context(), generateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Disburse implements PayrollHandler.
func (p *PayrollHandlerImpl) Disburse(w http.ResponseWriter, r *http.Request) {
	var disburseReq payroll.DisburseRequest

	if err := json.NewDecoder(r.Body).Decode(&disburseReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := p.payrollService.Disburse(r.Context(), disburseReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll disbursed", result)
}

// GetHistory implements PayrollHandler.
func (p *PayrollHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)

	result, err := p.payrollService.GetHistory(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListHistory implements PayrollHandler.
func (p *PayrollHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	result, err := p.payrollService.ListHistory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result.History)
}
