package payroll

import "context"

type PayrollService interface {
	// Preview computes the period without persisting anything.
	Preview(ctx context.Context, req GeneratePayrollRequest) (PayrollPreviewResponse, error)

	// Disburse recomputes the period and appends it to the history ledger.
	Disburse(ctx context.Context, req DisburseRequest) (PayrollHistoryResponse, error)

	GetHistory(ctx context.Context, month, year int) (PayrollHistoryResponse, error)
	ListHistory(ctx context.Context) (ListPayrollHistoryResponse, error)
}
