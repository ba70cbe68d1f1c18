package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is one payroll month.
type Period struct {
	Month int
	Year  int
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < 2000 || p.Year > 2200 {
		return ErrInvalidPeriod
	}
	return nil
}

// Label renders the period the way the narrative service expects it,
// e.g. "January 2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

// Bounds returns the first day of the month and the first day of the next
// month in the given location.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PayrollRecord is the deterministic per-employee result for a period.
// netPay = grossPay - deductions + overtime, always.
type PayrollRecord struct {
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	GrossPay          decimal.Decimal `json:"gross_pay"`
	Deductions        decimal.Decimal `json:"deductions"`
	Overtime          decimal.Decimal `json:"overtime"`
	NetPay            decimal.Decimal `json:"net_pay"`
	TotalDelayMinutes int             `json:"total_delay_minutes"`
	AbsentDays        int             `json:"absent_days"`
	OnLeaveDays       int             `json:"on_leave_days"`
	WorkedDays        int             `json:"worked_days"`
	NeedsReview       bool            `json:"needs_review"`
	Notes             *string         `json:"notes,omitempty"`
}

// PayrollHistory is one immutable disbursement snapshot. Entries are only
// ever appended; a period can be disbursed exactly once.
type PayrollHistory struct {
	ID          string
	PeriodMonth int
	PeriodYear  int
	GeneratedAt time.Time
	TotalNetPay decimal.Decimal
	Records     []PayrollRecord
	Narrative   *string
}
