package payroll

import "context"

// PayrollRepository owns the append-only payroll history ledger.
type PayrollRepository interface {
	// CreateHistory inserts a new snapshot. The period is unique: a second
	// insert for the same (month, year), including a concurrent one,
	// returns ErrAlreadyDisbursed.
	CreateHistory(ctx context.Context, h PayrollHistory) (PayrollHistory, error)

	// GetHistory returns the snapshot for a period or ErrHistoryNotFound.
	GetHistory(ctx context.Context, period Period) (PayrollHistory, error)

	// ListHistory returns all snapshots, newest period first.
	ListHistory(ctx context.Context) ([]PayrollHistory, error)
}
