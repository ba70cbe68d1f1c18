package payroll

import "errors"

var (
	// ErrAlreadyDisbursed is a hard failure: re-running disbursement for a
	// period would not change the outcome and is never retried silently.
	ErrAlreadyDisbursed = errors.New("payroll for this period has already been disbursed")
	ErrHistoryNotFound  = errors.New("payroll history entry not found")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
)
