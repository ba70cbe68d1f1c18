package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

// AttendanceRecord is the single per-(employee, calendar day) row. It is
// created on the first valid scan, completed by the check-out scan, and
// never deleted.
type AttendanceRecord struct {
	ID                string
	EmployeeID        string
	Date              time.Time // calendar day in the policy timezone
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	Status            Status
	DelayMinutes      int // raw lateness vs scheduled start, before grace
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
}

// IsComplete reports whether the day has both scans recorded.
func (r AttendanceRecord) IsComplete() bool {
	return r.CheckInTime != nil && r.CheckOutTime != nil
}
