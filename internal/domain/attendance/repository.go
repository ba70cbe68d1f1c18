package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// create and check-out methods are conditional writes: a scan that loses a
// race returns ErrConcurrentWriteConflict instead of double-writing, and
// the service retries against a freshly re-read record.
type AttendanceRepository interface {
	// CreateIfAbsent inserts the first record for (employee, date). A
	// concurrent insert for the same key yields ErrConcurrentWriteConflict.
	CreateIfAbsent(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// CompleteCheckOut sets the check-out fields on an open record. Returns
	// ErrConcurrentWriteConflict when the record was completed in between.
	CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, lat, lng *float64) error

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// Update applies an administrative correction.
	Update(ctx context.Context, rec AttendanceRecord) error

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, int64, error)

	// SumDelayMinutes totals recorded lateness across records matching the
	// filter, ignoring pagination.
	SumDelayMinutes(ctx context.Context, filter AttendanceFilter) (int, error)

	// QueryRange returns all records in [from, to] for one employee, or for
	// everyone when employeeID is nil. Used by payroll aggregation.
	QueryRange(ctx context.Context, employeeID *string, from, to time.Time) ([]AttendanceRecord, error)

	// MarkAbsent inserts an absent record for the day unless one exists.
	MarkAbsent(ctx context.Context, employeeID string, date time.Time) error
}
