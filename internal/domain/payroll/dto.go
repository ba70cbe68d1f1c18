package payroll

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

// OvertimeInput carries an admin-entered overtime amount for one employee.
type OvertimeInput struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type GeneratePayrollRequest struct {
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	Overtime    []OvertimeInput `json:"overtime,omitempty"`
}

func (r GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.Period().Validate(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be a valid month and year"})
	}
	for i, ot := range r.Overtime {
		field := "overtime[" + strconv.Itoa(i) + "]"
		if validator.IsEmpty(ot.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: field + ".employee_id", Message: "employee_id is required"})
		}
		if ot.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".amount", Message: "cannot be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r GeneratePayrollRequest) Period() Period {
	return Period{Month: r.PeriodMonth, Year: r.PeriodYear}
}

// DisburseRequest finalizes a period. It carries the same inputs as a preview
// so the disbursed snapshot is recomputed server side, never trusted from the
// client.
type DisburseRequest struct {
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	Overtime    []OvertimeInput `json:"overtime,omitempty"`
}

func (r DisburseRequest) Validate() error {
	return GeneratePayrollRequest(r).Validate()
}

func (r DisburseRequest) Period() Period {
	return Period{Month: r.PeriodMonth, Year: r.PeriodYear}
}

type PayrollPreviewResponse struct {
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	PeriodLabel string          `json:"period_label"`
	TotalNetPay decimal.Decimal `json:"total_net_pay"`
	Records     []PayrollRecord `json:"records"`
}

type PayrollHistoryResponse struct {
	ID          string          `json:"id"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	PeriodLabel string          `json:"period_label"`
	GeneratedAt time.Time       `json:"generated_at"`
	TotalNetPay decimal.Decimal `json:"total_net_pay"`
	Records     []PayrollRecord `json:"records"`
	Narrative   *string         `json:"narrative,omitempty"`
}

type ListPayrollHistoryResponse struct {
	History []PayrollHistoryResponse `json:"history"`
}
