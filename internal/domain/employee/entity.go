package employee

import (
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/domain/auth"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	Name         string
	Username     string
	Email        *string
	PasswordHash *string
	Role         auth.Role
	JobTitle     string
	Department   *string
	BaseSalary   decimal.Decimal
	Allowances   decimal.Decimal
	AvatarURL    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DailyRate pro-rates the monthly base salary over the given number of
// working days in the period. Allowances are not part of the daily rate;
// lateness deductions only erode base pay.
func (e Employee) DailyRate(workingDays int) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.Zero
	}
	return e.BaseSalary.Div(decimal.NewFromInt(int64(workingDays)))
}

// GrossPay is base salary plus fixed allowances for one period.
func (e Employee) GrossPay() decimal.Decimal {
	return e.BaseSalary.Add(e.Allowances)
}
