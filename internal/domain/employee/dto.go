package employee

import (
	"github.com/hadirhq/hadir-backend-go/internal/domain/auth"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name       string          `json:"name"`
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	Email      *string         `json:"email,omitempty"`
	Role       string          `json:"role"`
	JobTitle   string          `json:"job_title"`
	Department *string         `json:"department,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowances decimal.Decimal `json:"allowances"`
	AvatarURL  *string         `json:"avatar_url,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 chars of letters, digits, '.', '_' or '-'"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if !auth.IsValidRole(auth.Role(r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be 'admin' or 'employee'"})
	}
	if validator.IsEmpty(r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "job title is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base salary cannot be negative"})
	}
	if r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "allowances cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name,omitempty"`
	Password   *string          `json:"password,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Role       *string          `json:"role,omitempty"`
	JobTitle   *string          `json:"job_title,omitempty"`
	Department *string          `json:"department,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances *decimal.Decimal `json:"allowances,omitempty"`
	AvatarURL  *string          `json:"avatar_url,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if r.Role != nil && !auth.IsValidRole(auth.Role(*r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be 'admin' or 'employee'"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base salary cannot be negative"})
	}
	if r.Allowances != nil && r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "allowances cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Search     *string
	Department *string
	Role       *string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Username   string          `json:"username"`
	Email      *string         `json:"email,omitempty"`
	Role       string          `json:"role"`
	JobTitle   string          `json:"job_title"`
	Department *string         `json:"department,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowances decimal.Decimal `json:"allowances"`
	AvatarURL  *string         `json:"avatar_url,omitempty"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  string          `json:"created_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
